package kernel

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/danmuck/organctl/internal/organism"
)

// SaveState serializes organ health as flat text, one
// `<OrganKindName> <health>` line per organ, no header or versioning.
func SaveState(t *organism.SystemTopology, path string) error {
	var b strings.Builder
	for i := range t.Organs {
		fmt.Fprintf(&b, "%s %.4f\n", t.Organs[i].Kind, t.Organs[i].Health)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// LoadState applies a saved snapshot onto the topology. Lines with
// unknown organ names or unparsable health values are skipped
// silently so partial or foreign files degrade gracefully. Applied
// values are clamped. Returns the number of lines applied.
func LoadState(t *organism.SystemTopology, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("load state: %w", err)
	}

	applied := 0
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		kind, ok := organism.ParseOrganKind(fields[0])
		if !ok {
			continue
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		for _, organ := range t.OrgansOfKind(kind) {
			organ.SetHealth(value)
			applied++
		}
	}
	return applied, nil
}
