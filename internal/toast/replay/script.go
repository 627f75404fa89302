// Package replay drives a toast store from a YAML script, either on a
// simulated clock or in real time.
package replay

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/toast"
)

// Script is an ordered list of steps. Tail is how long to keep running after
// the last step so pending timers can fire.
type Script struct {
	Tail  time.Duration `yaml:"tail"`
	Steps []Step        `yaml:"steps"`
}

// Step waits After since the previous step, then performs exactly one action.
type Step struct {
	After   time.Duration  `yaml:"after"`
	Notify  *NotifyAction  `yaml:"notify,omitempty"`
	Dismiss *DismissAction `yaml:"dismiss,omitempty"`
	Clear   bool           `yaml:"clear,omitempty"`
}

// NotifyAction raises a toast through the registry. A nil Timeout uses the
// store default.
type NotifyAction struct {
	Severity string         `yaml:"severity"`
	Text     string         `yaml:"text"`
	Timeout  *time.Duration `yaml:"timeout,omitempty"`
}

// DismissAction dismisses a message by id.
type DismissAction struct {
	ID toast.ID `yaml:"id"`
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return &s, nil
}

// Validate reports every invalid field.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return criterio.NewFieldErrors("steps", fmt.Errorf("array is empty"))
	}

	var errs criterio.FieldErrorsBuilder

	if s.Tail < 0 {
		errs = errs.Append("tail", fmt.Errorf("must not be negative, got %s", s.Tail))
	}

	for i, step := range s.Steps {
		field := fmt.Sprintf("steps[%d]", i)

		if step.After < 0 {
			errs = errs.Append(field+".after", fmt.Errorf("must not be negative, got %s", step.After))
		}

		if n := step.actions(); n != 1 {
			errs = errs.Append(field, fmt.Errorf("needs exactly one of notify, dismiss, clear; got %d", n))
			continue
		}

		if a := step.Notify; a != nil {
			if strings.TrimSpace(a.Text) == "" {
				errs = errs.Append(field+".notify.text", fmt.Errorf("cannot be empty"))
			}
			if a.Severity != "" {
				if _, err := notify.ParseSeverity(a.Severity); err != nil {
					errs = errs.Append(field+".notify.severity", err)
				}
			}
			if a.Timeout != nil && *a.Timeout < 0 {
				errs = errs.Append(field+".notify.timeout", fmt.Errorf("must not be negative, got %s", *a.Timeout))
			}
		}

		if a := step.Dismiss; a != nil && a.ID < 0 {
			errs = errs.Append(field+".dismiss.id", fmt.Errorf("must not be negative, got %d", a.ID))
		}
	}

	return errs.ToError()
}

func (st Step) actions() int {
	n := 0
	if st.Notify != nil {
		n++
	}
	if st.Dismiss != nil {
		n++
	}
	if st.Clear {
		n++
	}
	return n
}

// Duration is the sum of every step delay plus the tail.
func (s *Script) Duration() time.Duration {
	total := s.Tail
	for _, st := range s.Steps {
		total += st.After
	}
	return total
}
