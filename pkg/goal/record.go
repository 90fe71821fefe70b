package goal

import (
	"strconv"
	"strings"
)

// Fields are not escaped; New rejects text containing the delimiter.
const recordDelimiter = ","

func joinRecord(fields ...string) string {
	return strings.Join(fields, recordDelimiter)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// formatBool uses the capitalised spelling found in existing goal files.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ParseRecord reconstructs a goal from a line produced by SaveFormat.
// Errors wrap ErrFormat.
func ParseRecord(line string) (Goal, error) {
	line = strings.TrimRight(line, "\r")
	parts := strings.Split(line, recordDelimiter)

	kind := Kind(parts[0])
	switch kind {
	case KindSimple:
		if len(parts) != 5 {
			return nil, fieldCountError(kind, 5, len(parts))
		}
		points, err := parseInt("points", parts[3])
		if err != nil {
			return nil, err
		}
		complete, err := strconv.ParseBool(parts[4])
		if err != nil {
			return nil, formatf("completion flag %q is not a boolean", parts[4])
		}
		g := NewSimple(parts[1], parts[2], points)
		g.complete = complete
		return g, nil

	case KindEternal:
		if len(parts) != 4 {
			return nil, fieldCountError(kind, 4, len(parts))
		}
		points, err := parseInt("points", parts[3])
		if err != nil {
			return nil, err
		}
		return NewEternal(parts[1], parts[2], points), nil

	case KindChecklist:
		if len(parts) != 7 {
			return nil, fieldCountError(kind, 7, len(parts))
		}
		var nums [4]int
		for i, field := range []string{"points", "target count", "current count", "bonus"} {
			n, err := parseInt(field, parts[3+i])
			if err != nil {
				return nil, err
			}
			nums[i] = n
		}
		points, target, count, bonus := nums[0], nums[1], nums[2], nums[3]
		if target <= 0 {
			return nil, formatf("target count must be positive, got %d", target)
		}
		if count < 0 {
			return nil, formatf("current count must not be negative, got %d", count)
		}
		g := NewChecklist(parts[1], parts[2], points, target, bonus)
		g.count = count
		return g, nil
	}

	return nil, formatf("unknown goal type %q", parts[0])
}

func fieldCountError(kind Kind, want, got int) error {
	return formatf("%s record needs %d fields, got %d", kind, want, got)
}

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, formatf("%s %q is not an integer", field, s)
	}
	return n, nil
}
