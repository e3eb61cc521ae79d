package dom

import "strings"

// ClassList is the ordered set of CSS classes on an element.
type ClassList struct {
	owner   *Element
	classes []string
}

// Add appends classes that are not already present.
func (c *ClassList) Add(names ...string) {
	changed := false
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || c.Contains(name) {
			continue
		}
		c.classes = append(c.classes, name)
		changed = true
	}
	if changed {
		c.owner.classesChanged()
	}
}

// Remove drops the named classes if present.
func (c *ClassList) Remove(names ...string) {
	changed := false
	for _, name := range names {
		for i, existing := range c.classes {
			if existing == name {
				c.classes = append(c.classes[:i], c.classes[i+1:]...)
				changed = true
				break
			}
		}
	}
	if changed {
		c.owner.classesChanged()
	}
}

// Toggle adds the class when absent and removes it when present.
// It reports whether the class is present afterwards.
func (c *ClassList) Toggle(name string) bool {
	if c.Contains(name) {
		c.Remove(name)
		return false
	}
	c.Add(name)
	return true
}

// Contains reports whether name is in the list.
func (c *ClassList) Contains(name string) bool {
	for _, existing := range c.classes {
		if existing == name {
			return true
		}
	}
	return false
}

// Len returns the number of classes.
func (c *ClassList) Len() int {
	return len(c.classes)
}

// Values returns a copy of the classes in insertion order.
func (c *ClassList) Values() []string {
	out := make([]string, len(c.classes))
	copy(out, c.classes)
	return out
}

// String returns the space separated class attribute value.
func (c *ClassList) String() string {
	return strings.Join(c.classes, " ")
}
