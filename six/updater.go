package six

import (
	"fmt"

	"github.com/nitro-go/nitro/errs"
)

// MigrationStep performs one single-step version migration (v -> next)
// in place on p, returning the version it leaves p at. Steps are
// registered per family and applied in ascending version order until
// the target version is reached.
type MigrationStep func(p Product) (Version, error)

type migrationKey struct {
	family Family
	from   Version
}

var migrations = map[migrationKey]MigrationStep{}

// RegisterMigration installs the single-step migration for family from
// version `from`. A family with no migration registered for its current
// version cannot be updated past it; UpdateVersion reports this as
// errs.ErrUnknownVersion.
func RegisterMigration(family Family, from Version, step MigrationStep) {
	migrations[migrationKey{family: family, from: from}] = step
}

// UpdateVersion walks p's registered migrations forward until it reaches
// target or no further migration is registered. It returns an error if
// the walk cannot reach target. A step that fabricates a best-guess
// value for a newly required element must call p.Log().Note; the
// updater never guesses silently.
func UpdateVersion(p Product, target Version) error {
	family := p.Family()

	for {
		current := p.ProductVersion()
		if current == target {
			return nil
		}

		if target.Less(current) {
			return fmt.Errorf("six: %s %s is newer than target %s, downgrade migrations are not supported: %w", family, current, target, errs.ErrUnknownVersion)
		}

		step, ok := migrations[migrationKey{family: family, from: current}]
		if !ok {
			return fmt.Errorf("six: no migration registered for %s from %s toward %s: %w", family, current, target, errs.ErrUnknownVersion)
		}

		next, err := step(p)
		if err != nil {
			return fmt.Errorf("six: migrating %s %s: %w", family, current, err)
		}

		setVersion(p, next)
	}
}

func setVersion(p Product, v Version) {
	switch product := p.(type) {
	case *SICD:
		product.Version = v
	case *SIDD:
		product.Version = v
	case *CPHD:
		product.Version = v
	}
}
