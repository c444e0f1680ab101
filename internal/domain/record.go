package domain

// Sentinel fills any required field a portal did not provide.
const Sentinel = "N/A"

// SourceField is always the first column of the consolidated output.
const SourceField = "source"

// RequiredFields every record must carry before it is written out.
// SourceField is required too but handled separately (column position).
var RequiredFields = []string{"title", "company", "location", "salary", "description", "job_url"}

// Record is one job listing: field name -> value, with insertion order
// preserved so the consolidated table can lay columns out in
// first-occurrence order. Zero value is not usable; call NewRecord.
type Record struct {
	fields map[string]string
	order  []string
}

func NewRecord() *Record {
	return &Record{fields: make(map[string]string)}
}

func (r *Record) Set(key, value string) {
	if _, ok := r.fields[key]; !ok {
		r.order = append(r.order, key)
	}
	r.fields[key] = value
}

func (r *Record) Get(key string) string {
	return r.fields[key]
}

func (r *Record) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// Keys returns field names in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Record) Len() int {
	return len(r.order)
}

func (r *Record) Clone() *Record {
	c := NewRecord()
	for _, k := range r.order {
		c.Set(k, r.fields[k])
	}
	return c
}
