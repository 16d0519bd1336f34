// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Activity is an extracurricular offering students can sign up for.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// HasParticipant reports whether email is already signed up. Comparison is exact.
func (a Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// IsFull reports whether the participant count reached MaxParticipants.
// A non-positive MaxParticipants means unlimited.
func (a Activity) IsFull() bool {
	return a.MaxParticipants > 0 && len(a.Participants) >= a.MaxParticipants
}

// Clone returns a copy that shares no memory with a.
func (a Activity) Clone() Activity {
	a.Participants = append([]string{}, a.Participants...)
	return a
}

// MarshalJSON always encodes participants as an array, never null.
func (a Activity) MarshalJSON() ([]byte, error) {
	type plain Activity
	if a.Participants == nil {
		a.Participants = []string{}
	}
	return json.Marshal(plain(a))
}

// NamedActivity pairs an activity with its catalog key.
type NamedActivity struct {
	Name     string
	Activity Activity
}

// Catalog is an ordered set of activities keyed by name.
// It encodes as a JSON object whose keys keep catalog order.
type Catalog []NamedActivity

// Lookup finds an activity by exact name.
func (c Catalog) Lookup(name string) (Activity, bool) {
	for _, item := range c {
		if item.Name == name {
			return item.Activity, true
		}
	}
	return Activity{}, false
}

// Names returns activity names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, item := range c {
		names[i] = item.Name
	}
	return names
}

// Clone deep copies the catalog.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for i, item := range c {
		out[i] = NamedActivity{Name: item.Name, Activity: item.Activity.Clone()}
	}
	return out
}

func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(item.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(item.Activity)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object and keeps the key order of the input.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog: expected object, got %v", tok)
	}

	out := Catalog{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("catalog: expected string key, got %v", tok)
		}
		var a Activity
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("catalog: activity %q: %w", name, err)
		}
		out = append(out, NamedActivity{Name: name, Activity: a})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}

// SignupEvent is emitted after a participant joins an activity. Participants
// is the head count including this signup.
type SignupEvent struct {
	ID           string    `json:"id"`
	Activity     string    `json:"activity"`
	Email        string    `json:"email"`
	Participants int       `json:"participants,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
