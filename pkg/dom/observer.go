package dom

import "golang.org/x/net/html"

// MutationRecord describes one childList change of a connected parent.
type MutationRecord struct {
	// Target is the parent whose children changed.
	Target *html.Node

	// Added are the nodes inserted into Target. Inserted fragments are
	// reported as their former children.
	Added []*html.Node

	// Removed are the nodes detached from Target. Only the detached roots are
	// reported, not their descendants.
	Removed []*html.Node
}

// MutationObserver receives records for mutations made through Document
// methods while the mutated parent is connected to the document.
//
// Records are delivered synchronously, once per Document call, after the
// mutation is complete.
type MutationObserver struct {
	doc      *Document
	callback func([]MutationRecord)
}

// Observe registers callback for document subtree childList mutations.
func (d *Document) Observe(callback func([]MutationRecord)) *MutationObserver {
	o := &MutationObserver{doc: d, callback: callback}
	d.observers = append(d.observers, o)
	return o
}

// Disconnect stops delivery to this observer.
func (o *MutationObserver) Disconnect() {
	if o.doc == nil {
		return
	}
	observers := o.doc.observers
	for i, existing := range observers {
		if existing == o {
			o.doc.observers = append(observers[:i], observers[i+1:]...)
			break
		}
	}
	o.doc = nil
}

// recorder accumulates records for a single Document call.
type recorder struct {
	doc     *Document
	records []MutationRecord
}

func (r *recorder) record(target *html.Node, added, removed *html.Node) {
	if len(r.doc.observers) == 0 || !r.doc.IsConnected(target) {
		return
	}
	// Coalesce consecutive changes to the same parent
	if n := len(r.records); n > 0 && r.records[n-1].Target == target {
		last := &r.records[n-1]
		if added != nil {
			last.Added = append(last.Added, added)
		}
		if removed != nil {
			last.Removed = append(last.Removed, removed)
		}
		return
	}
	rec := MutationRecord{Target: target}
	if added != nil {
		rec.Added = []*html.Node{added}
	}
	if removed != nil {
		rec.Removed = []*html.Node{removed}
	}
	r.records = append(r.records, rec)
}

func (r *recorder) flush() {
	if len(r.records) == 0 {
		return
	}
	records := r.records
	r.records = nil

	observers := make([]*MutationObserver, len(r.doc.observers))
	copy(observers, r.doc.observers)
	for _, o := range observers {
		if o.doc != nil {
			o.callback(records)
		}
	}
}
