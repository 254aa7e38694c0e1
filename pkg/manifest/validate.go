// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/scmd/pkg/scmd"
)

var errEmpty = errors.New("value is empty")

// check validates one converted value.
type check func(p *scmd.Params) error

func (a *Arg) checkValidators() error {
	_, err := a.checks()
	return err
}

// checks compiles the validators configured on a.
func (a *Arg) checks() ([]check, error) {
	var out []check
	switch a.Validate {
	case "":
	case "nonempty":
		if a.Type != "string" {
			return nil, fmt.Errorf("validate %q needs a string argument", a.Validate)
		}
		out = append(out, func(p *scmd.Params) error {
			if p.String == "" {
				return errEmpty
			}
			return nil
		})
	case "semver":
		if a.Type != "string" {
			return nil, fmt.Errorf("validate %q needs a string argument", a.Validate)
		}
		out = append(out, func(p *scmd.Params) error {
			_, err := semver.NewVersion(p.String)
			return err
		})
	default:
		return nil, fmt.Errorf("unknown validator %q", a.Validate)
	}

	if a.Constraint != "" {
		if a.Type != "string" {
			return nil, fmt.Errorf("constraint needs a string argument")
		}
		c, err := semver.NewConstraint(a.Constraint)
		if err != nil {
			return nil, fmt.Errorf("bad constraint %q: %w", a.Constraint, err)
		}
		out = append(out, func(p *scmd.Params) error {
			v, err := semver.NewVersion(p.String)
			if err != nil {
				return err
			}
			if !c.Check(v) {
				return fmt.Errorf("version %s does not satisfy %s", v, a.Constraint)
			}
			return nil
		})
	}

	if a.Min != nil || a.Max != nil {
		if a.Type != "number" {
			return nil, fmt.Errorf("min and max need a number argument")
		}
		if a.Min != nil && a.Max != nil && *a.Min > *a.Max {
			return nil, fmt.Errorf("min %d is greater than max %d", *a.Min, *a.Max)
		}
		signed := a.Signed
		lo, hi := a.Min, a.Max
		out = append(out, func(p *scmd.Params) error {
			v := int64(p.Value)
			if signed {
				v = int64(int32(p.Value))
			}
			if lo != nil && v < *lo {
				return fmt.Errorf("%d is less than %d", v, *lo)
			}
			if hi != nil && v > *hi {
				return fmt.Errorf("%d is greater than %d", v, *hi)
			}
			return nil
		})
	}
	return out, nil
}

// Rejection records a value refused by a validator.
type Rejection struct {
	Arg   string
	Value string
	Err   error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("%s: invalid value %q: %v", r.Arg, r.Value, r.Err)
}

// callback wraps the checks of a as a registry callback. Refused values are
// appended to rejected.
func (a *Arg) callback(rejected *[]Rejection) (scmd.ParamsFunc, error) {
	checks, err := a.checks()
	if err != nil || len(checks) == 0 {
		return nil, err
	}
	label := a.Label()
	return func(p *scmd.Params, raw string) bool {
		for _, c := range checks {
			if err := c(p); err != nil {
				*rejected = append(*rejected, Rejection{Arg: label, Value: raw, Err: err})
				return false
			}
		}
		return true
	}, nil
}
