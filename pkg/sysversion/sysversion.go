package sysversion

import (
	"context"
	"fmt"

	"github.com/fox-one/pkg/property"
)

const (
	SysVersionKey = "sysversion"

	// Current ledger schema version written by migrate
	Current int64 = 1
)

func ReadSysVersion(ctx context.Context, property property.Store) (int64, error) {
	v, err := property.Get(ctx, SysVersionKey)
	if err != nil {
		return 0, err
	}
	return v.Int64(), nil
}

func SaveSysVersion(ctx context.Context, property property.Store, version int64) error {
	return property.Save(ctx, SysVersionKey, version)
}

// Require fails when the database was migrated by an older release
func Require(ctx context.Context, property property.Store) error {
	v, err := ReadSysVersion(ctx, property)
	if err != nil {
		return err
	}

	if v < Current {
		return fmt.Errorf("database at version %d, run migrate to reach %d", v, Current)
	}

	return nil
}
