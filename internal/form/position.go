package form

// Ref addresses a module or topic either by stable ID or by legacy 1-based
// priority index. When both are supplied the ID wins; the index is only
// consulted for clients that still paginate by position.
type Ref struct {
	ID    string
	Index int
}

func ByID(id string) Ref { return Ref{ID: id} }
func ByPriority(n int) Ref { return Ref{Index: n} }
func (r Ref) IsZero() bool { return r.ID == "" && r.Index <= 0 }
func (r Ref) hasIndex() bool { return r.Index >= 1 }

// Position is a resolved (module, topic) location inside the catalog.
type Position struct {
	ModuleID string `json:"module_id"`
	TopicID  string `json:"topic_id"`
}

// NavResult is the outcome of a Next/Previous transition. OK=false is the
// terminal state: there is no further accessible topic in that direction.
type NavResult struct {
	Position   Position `json:"position"`
	SameModule bool     `json:"is_same_module"`
	OK         bool     `json:"ok"`
}
