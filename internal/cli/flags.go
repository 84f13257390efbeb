package cli

import (
	"time"

	"github.com/alexanderramin/timecard/internal/config"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/spf13/pflag"
)

// policyValue is a pflag.Value accepting the break policy names.
type policyValue struct {
	p domain.BreakPolicy
}

var _ pflag.Value = (*policyValue)(nil)

func (v *policyValue) String() string { return string(v.p) }

func (v *policyValue) Set(s string) error {
	p, err := config.ParseBreakPolicy(s)
	if err != nil {
		return err
	}
	v.p = p
	return nil
}

func (v *policyValue) Type() string { return "policy" }

// monthValue is a pflag.Value accepting YYYY-MM.
type monthValue struct {
	t time.Time
}

var _ pflag.Value = (*monthValue)(nil)

func (v *monthValue) String() string {
	if v.t.IsZero() {
		return ""
	}
	return v.t.Format("2006-01")
}

func (v *monthValue) Set(s string) error {
	t, err := config.ParseMonth(s)
	if err != nil {
		return err
	}
	v.t = t
	return nil
}

func (v *monthValue) Type() string { return "month" }
