package topic

import "strings"

// Topic is a dotted event name such as "config.changed". As a subscription
// pattern a "*" part stands for one name part and "**" for any number.
type Topic string

func (t Topic) String() string {
	return string(t)
}

// IsValid reports whether t is non-empty and has no empty parts.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for _, part := range t.parts() {
		if part == "" {
			return false
		}
	}
	return true
}

// Matches reports whether t is matched by pattern.
func (t Topic) Matches(pattern Topic) bool {
	return match(t.parts(), pattern.parts())
}

func (t Topic) parts() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), ".")
}

func match(name, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			for skip := 0; skip <= len(name); skip++ {
				if match(name[skip:], pattern[1:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 || (pattern[0] != "*" && pattern[0] != name[0]) {
			return false
		}
		name, pattern = name[1:], pattern[1:]
	}
	return len(name) == 0
}
