// ABOUTME: Page chrome toggling by class name for the misc and jobs handlers
// ABOUTME: Class lists follow getElementsByClassName: every class must be present

package htmldoc

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"linkoff-engine/core/domain"
)

// SetHiddenByClass hides or shows every element carrying all classes in
// class. It returns the number of elements touched.
func (d *Document) SetHiddenByClass(class string, hidden bool, mode domain.VisualMode) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.byClass(class)
	setHidden(s, hidden, mode)
	return s.Length()
}

// SetHiddenByClassIndex toggles only the index-th element carrying class.
func (d *Document) SetHiddenByClassIndex(class string, index int, hidden bool, mode domain.VisualMode) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	all := d.byClass(class)
	if index < 0 || index >= all.Length() {
		return false
	}
	setHidden(all.Eq(index), hidden, mode)
	return true
}

// SetAncestorHiddenByChildClass toggles the closest ancestor matching
// ancestorSelector of every element carrying childClass.
func (d *Document) SetAncestorHiddenByChildClass(childClass, ancestorSelector string, hidden bool, mode domain.VisualMode) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.byClass(childClass).Parent().Closest(ancestorSelector)
	setHidden(s, hidden, mode)
	return s.Length()
}

// SetContainerHidden toggles the hide class on the first element carrying
// class.
func (d *Document) SetContainerHidden(class string, hidden bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.byClass(class).First()
	if s.Length() == 0 {
		return false
	}
	if hidden {
		s.AddClass(ClassHide)
	} else {
		s.RemoveClass(ClassHide)
	}
	return true
}

func setHidden(s *goquery.Selection, hidden bool, mode domain.VisualMode) {
	if !hidden {
		s.RemoveClass(ClassHide, ClassDim)
		return
	}
	s.RemoveClass(ClassHide, ClassDim)
	s.AddClass(modeClass(mode))
}

// byClass finds the elements carrying every class in class, which may
// list several space separated names.
func (d *Document) byClass(class string) *goquery.Selection {
	fields := strings.Fields(class)
	if len(fields) == 0 {
		return d.doc.Selection.Slice(0, 0)
	}
	return d.doc.Find("." + strings.Join(fields, "."))
}
