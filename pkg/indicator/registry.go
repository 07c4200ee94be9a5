package indicator

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var ErrUnknownKind = errors.New("unknown indicator kind")

var kinds = map[string]Kind{}

func init() {
	for _, kind := range []Kind{SMAKind, EMAKind, WMAKind, RSIKind, WillRKind, OBVKind, StdDevKind, TradeVolumeKind} {
		Register(kind)
	}
}

// Register makes kind available to Lookup and ParseSpec. Hosts register
// their own variants at init time.
func Register(kind Kind) {
	kind.ID = strings.ToLower(kind.ID)
	kinds[kind.ID] = kind
}

// Lookup returns the kind registered under id
func Lookup(id string) (Kind, bool) {
	kind, ok := kinds[strings.ToLower(id)]
	return kind, ok
}

// Kinds returns every registered kind ordered by id
func Kinds() []Kind {
	ids := lo.Keys(kinds)
	sort.Strings(ids)
	return lo.Map(ids, func(id string, _ int) Kind { return kinds[id] })
}

// ParseSpec parses "id", "id:arg,arg" or "id:arg@color" into a Spec
func ParseSpec(raw string) (Spec, error) {
	body, color, _ := strings.Cut(strings.TrimSpace(raw), "@")
	id, rawArgs, hasArgs := strings.Cut(body, ":")

	kind, ok := Lookup(id)
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownKind, id)
	}

	spec := Spec{Kind: kind, Color: color}
	if !hasArgs || rawArgs == "" {
		return spec, nil
	}

	for _, part := range strings.Split(rawArgs, ",") {
		arg, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Spec{}, fmt.Errorf("indicator %s: argument %q: %w", id, part, err)
		}
		spec.Args = append(spec.Args, arg)
	}

	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}
