package scsi

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseError reports a malformed or truncated legacy SCSI inventory.
// The parse is all-or-nothing: one bad record voids the whole scan,
// and no partial result is returned. Remaining carries the unconsumed
// input from the failure point; NeedBytes is non-zero when the input
// looks truncated rather than malformed, hinting how many more bytes
// a retry would minimally need.
type ParseError struct {
	Offset    int
	Remaining string
	NeedBytes int
	Reason    string
}

func (e *ParseError) Error() string {
	if e.NeedBytes > 0 {
		return fmt.Sprintf("scsi inventory truncated at offset %d (%s): need at least %d more bytes", e.Offset, e.Reason, e.NeedBytes)
	}
	return fmt.Sprintf("scsi inventory malformed at offset %d: %s", e.Offset, e.Reason)
}

// ParseProcScsi parses the kernel's textual SCSI inventory
// (/proc/scsi/scsi) into ScsiInfo records, in input order.
//
// The input is first split into record spans on the "Host:" tag, then
// each span is validated independently; this keeps the truncated vs
// malformed distinction explicit instead of aborting somewhere inside
// a combinator chain. Unknown vendor or type tokens are parse
// failures on this path, unlike the structured sysfs walk.
func ParseProcScsi(data []byte) ([]ScsiInfo, error) {
	text := string(data)

	spans, err := splitRecords(text)
	if err != nil {
		return nil, err
	}

	records := make([]ScsiInfo, 0, len(spans))
	for _, span := range spans {
		rec, err := parseRecord(span)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// recordSpan is one record's slice of the input plus its offset, kept
// for error reporting.
type recordSpan struct {
	text   string
	offset int
}

const hostTag = "Host:"

// splitRecords cuts the input into one span per "Host:" tag. The
// optional "Attached devices:" banner may precede the first record.
func splitRecords(text string) ([]recordSpan, error) {
	body := text
	base := 0

	trimmed := strings.TrimLeftFunc(body, unicode.IsSpace)
	base += len(body) - len(trimmed)
	body = trimmed
	if rest, ok := strings.CutPrefix(body, "Attached devices:"); ok {
		base += len(body) - len(rest)
		body = rest
	}
	trimmed = strings.TrimLeftFunc(body, unicode.IsSpace)
	base += len(body) - len(trimmed)
	body = trimmed

	if body == "" {
		return nil, &ParseError{Offset: base, Remaining: "", NeedBytes: minRecordBytes, Reason: "no records"}
	}
	if !strings.HasPrefix(body, hostTag) {
		return nil, &ParseError{Offset: base, Remaining: body, Reason: "expected " + hostTag}
	}

	var spans []recordSpan
	for len(body) > 0 {
		next := strings.Index(body[len(hostTag):], hostTag)
		if next < 0 {
			spans = append(spans, recordSpan{text: body, offset: base})
			break
		}
		cut := next + len(hostTag)
		spans = append(spans, recordSpan{text: body[:cut], offset: base})
		base += cut
		body = body[cut:]
	}
	return spans, nil
}

// Field order of one record. minTail[i] is the least number of bytes
// a well-formed record still needs once field i is the next expected,
// used for the truncation hint.
var recordFields = []string{
	"Host: scsi", "Channel:", "Id:", "Lun:",
	"Vendor:", "Model:", "Rev:", "Type:", "ANSI  SCSI revision:",
}

var minTail = func() []int {
	tails := make([]int, len(recordFields)+1)
	for i := len(recordFields) - 1; i >= 0; i-- {
		// tag + one space + a one-byte value
		tails[i] = tails[i+1] + len(recordFields[i]) + 2
	}
	return tails
}()

const minRecordBytes = len("Host: scsi0 Channel: 0 Id: 0 Lun: 0 Vendor: A Model: A Rev: A Type: 0 ANSI  SCSI revision: 0")

func parseRecord(span recordSpan) (ScsiInfo, error) {
	sc := &recordScanner{text: span.text, base: span.offset}

	host, err := sc.taggedUint8(0, "Host:", "scsi")
	if err != nil {
		return ScsiInfo{}, err
	}
	channel, err := sc.taggedUint8(1, "Channel:")
	if err != nil {
		return ScsiInfo{}, err
	}
	id, err := sc.taggedUint8(2, "Id:")
	if err != nil {
		return ScsiInfo{}, err
	}
	lun, err := sc.taggedUint8(3, "Lun:")
	if err != nil {
		return ScsiInfo{}, err
	}

	vendorTok, err := sc.taggedToken(4, "Vendor:")
	if err != nil {
		return ScsiInfo{}, err
	}
	modelTok, err := sc.taggedToken(5, "Model:")
	if err != nil {
		return ScsiInfo{}, err
	}
	revTok, err := sc.taggedToken(6, "Rev:")
	if err != nil {
		return ScsiInfo{}, err
	}
	typeTok, err := sc.taggedToken(7, "Type:")
	if err != nil {
		return ScsiInfo{}, err
	}

	revision, err := sc.ansiRevision()
	if err != nil {
		return ScsiInfo{}, err
	}

	vendor, err := ParseVendor(vendorTok)
	if err != nil {
		return ScsiInfo{}, sc.malformed(err.Error())
	}
	scsiType, err := ParseDeviceTypeCode(typeTok)
	if err != nil {
		return ScsiInfo{}, sc.malformed(err.Error())
	}

	model := modelTok
	rev := revTok
	return ScsiInfo{
		Host:     host,
		Channel:  channel,
		ID:       id,
		LUN:      lun,
		Vendor:   vendor,
		Model:    &model,
		Rev:      &rev,
		Type:     scsiType,
		Revision: revision,
	}, nil
}

// recordScanner validates one record span field by field. All literal
// tags may be surrounded by arbitrary whitespace runs, including
// newlines; numeric fields are unsigned decimal, value tokens are
// whitespace-delimited words.
type recordScanner struct {
	text string
	pos  int
	base int
}

func (sc *recordScanner) ws() {
	for sc.pos < len(sc.text) && unicode.IsSpace(rune(sc.text[sc.pos])) {
		sc.pos++
	}
}

func (sc *recordScanner) truncated(field int, what string) *ParseError {
	return &ParseError{
		Offset:    sc.base + sc.pos,
		Remaining: sc.text[sc.pos:],
		NeedBytes: minTail[field],
		Reason:    "input ended before " + what,
	}
}

func (sc *recordScanner) malformed(reason string) *ParseError {
	return &ParseError{
		Offset:    sc.base + sc.pos,
		Remaining: sc.text[sc.pos:],
		Reason:    reason,
	}
}

// literal consumes the exact tag, tolerating leading whitespace.
func (sc *recordScanner) literal(field int, tag string) error {
	sc.ws()
	if sc.pos == len(sc.text) {
		return sc.truncated(field, fmt.Sprintf("%q", tag))
	}
	if !strings.HasPrefix(sc.text[sc.pos:], tag) {
		return sc.malformed(fmt.Sprintf("expected %q", tag))
	}
	sc.pos += len(tag)
	return nil
}

func (sc *recordScanner) digits(field int) (string, error) {
	sc.ws()
	start := sc.pos
	for sc.pos < len(sc.text) && sc.text[sc.pos] >= '0' && sc.text[sc.pos] <= '9' {
		sc.pos++
	}
	if sc.pos == start {
		if sc.pos == len(sc.text) {
			return "", sc.truncated(field, "number")
		}
		return "", sc.malformed("expected unsigned decimal")
	}
	return sc.text[start:sc.pos], nil
}

// taggedUint8 consumes the tag sequence then a u8. "Host: scsi2" is
// the one place where the number follows its tag with no separator.
func (sc *recordScanner) taggedUint8(field int, tags ...string) (uint8, error) {
	for _, tag := range tags {
		if err := sc.literal(field, tag); err != nil {
			return 0, err
		}
	}
	raw, err := sc.digits(field)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return 0, sc.malformed(fmt.Sprintf("value %q out of range", raw))
	}
	return uint8(n), nil
}

// taggedToken consumes the tag then a whitespace-delimited word.
// Earlier revisions of the kernel format delimit Model with two
// spaces and later ones with one; cutting on any whitespace run
// accepts both, at the cost of byte-exact parity with the two-space
// variant for models that embed a space.
func (sc *recordScanner) taggedToken(field int, tag string) (string, error) {
	if err := sc.literal(field, tag); err != nil {
		return "", err
	}
	sc.ws()
	start := sc.pos
	for sc.pos < len(sc.text) && !unicode.IsSpace(rune(sc.text[sc.pos])) {
		sc.pos++
	}
	if sc.pos == start {
		return "", sc.truncated(field, "token")
	}
	return sc.text[start:sc.pos], nil
}

func (sc *recordScanner) ansiRevision() (uint32, error) {
	const field = 8
	if err := sc.literal(field, "ANSI"); err != nil {
		return 0, err
	}
	if err := sc.literal(field, "SCSI"); err != nil {
		return 0, err
	}
	if err := sc.literal(field, "revision:"); err != nil {
		return 0, err
	}
	raw, err := sc.digits(field)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, sc.malformed(fmt.Sprintf("revision %q out of range", raw))
	}
	return uint32(n), nil
}
