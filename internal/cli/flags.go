package cli

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"

	"route-cli/internal/model"
)

// quantityValue is a non-negative amount flag. Left unset it stays
// distinguishable from an explicit 0.
type quantityValue struct {
	q model.Quantity
}

var _ pflag.Value = (*quantityValue)(nil)

func (v *quantityValue) String() string { return v.q.String() }

func (v *quantityValue) Set(s string) error {
	q, err := model.ParseQuantity(s)
	if err != nil {
		return err
	}
	if q.Set && q.Value < 0 {
		return errors.New("must not be negative")
	}
	v.q = q
	return nil
}

func (v *quantityValue) Type() string { return "quantity" }

// clockValue accepts a 24h HH:MM start time.
type clockValue struct {
	s string
}

var _ pflag.Value = (*clockValue)(nil)

func (v *clockValue) String() string { return v.s }

func (v *clockValue) Set(s string) error {
	s = strings.TrimSpace(s)
	if _, err := model.ParseClock(s); err != nil {
		return err
	}
	v.s = s
	return nil
}

func (v *clockValue) Type() string { return "HH:MM" }
