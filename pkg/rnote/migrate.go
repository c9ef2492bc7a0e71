package rnote

import (
	"encoding/json"

	"github.com/Masterminds/semver/v3"

	"github.com/flxzt/rnotefmt"
	"github.com/flxzt/rnotefmt/internal/logging"
)

// A migration is one step of the schema upgrade chain.
type migration struct {
	// from and to are the schema versions this step converts between.
	from *semver.Version
	to   *semver.Version
	// accepts matches the saved versions that enter the chain at this step.
	accepts *semver.Constraints
	// apply reworks the wrapped document data.
	apply func(data json.RawMessage) (json.RawMessage, error)
}

// The upgrade chain, oldest step first. A document enters at the first step
// whose accepts range matches its saved version and then passes through
// every later step.
var migrations = []migration{
	{
		from:    semver.MustParse("0.5.8"),
		to:      semver.MustParse("0.5.9"),
		accepts: mustConstraint(">= 0.5.0, < 0.5.9"),
		apply:   applyV058ToV059,
	},
}

// currentVersions matches saved versions that need no upgrade at all.
var currentVersions = mustConstraint(">= 0.5.9")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// upgrade brings document data saved under version ver up to the current
// schema. The first failing step aborts the whole load.
func upgrade(ver *semver.Version, data json.RawMessage) (json.RawMessage, error) {
	entered := false
	for _, m := range migrations {
		if !entered && !m.accepts.Check(ver) {
			continue
		}
		entered = true

		upgraded, err := m.apply(data)
		if err != nil {
			return nil, rnotefmt.NewMigration(m.from.String(), m.to.String(), err)
		}
		logging.Debug("Upgraded document schema %v -> %v", m.from, m.to)
		data = upgraded
	}

	if !entered && !currentVersions.Check(ver) {
		return nil, rnotefmt.NewUnsupportedVersion(ver.String())
	}
	return data, nil
}

func applyV058ToV059(data json.RawMessage) (json.RawMessage, error) {
	var old FileV058
	if err := decodeJSON(data, &old); err != nil {
		return nil, err
	}
	upgraded, err := upgradeFileV058(old)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&upgraded)
}
