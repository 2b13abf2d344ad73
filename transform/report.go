package transform

// RecordKind classifies how a UDF call was carried over to the target
// dialect.
type RecordKind int

const (
	// RecordNative marks a view-declared UDF backed by a builtin the
	// target understands directly.
	RecordNative RecordKind = iota
	// RecordTransported marks a UDF substituted with a declared
	// target-native class.
	RecordTransported
	// RecordFallback marks a UDF re-emitted against its original class.
	RecordFallback
)

func (k RecordKind) String() string {
	switch k {
	case RecordNative:
		return "native"
	case RecordTransported:
		return "transported"
	case RecordFallback:
		return "fallback"
	}
	return "unknown"
}

// UDFRecord is one side-channel entry describing a UDF the conversion
// touched, consumed by downstream packaging and dependency resolution.
type UDFRecord struct {
	Operator     string
	Target       string
	Dependencies []string
	Kind         RecordKind
}

// Report accumulates UDF usage records over one conversion. Entries are
// de-duplicated by operator, target and kind.
type Report struct {
	records []UDFRecord
	seen    map[string]struct{}
}

func NewReport() *Report {
	return &Report{seen: make(map[string]struct{})}
}

func (r *Report) Add(rec UDFRecord) {
	key := rec.Operator + "\x00" + rec.Target + "\x00" + rec.Kind.String()
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	r.records = append(r.records, rec)
}

func (r *Report) Records() []UDFRecord { return r.records }
