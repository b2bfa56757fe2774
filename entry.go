package weblog

// An Entry is a single weblog post.
//
// Entries are immutable once the store assigns them an ID.
type Entry struct {
	ID    uint   `db:"id"`
	Title string `db:"title"`
	Text  string `db:"text"`
}

// Exists asserts whether the store has assigned Entry an ID.
func (e Entry) Exists() bool { return e.ID != 0 }
