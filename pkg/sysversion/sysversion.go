package sysversion

import (
	"context"
	"fmt"

	"github.com/fox-one/pkg/property"
)

const (
	SysVersionKey = "sysversion"

	// Current encoding of journaled operation bodies
	Current int64 = 1
)

func ReadSysVersion(ctx context.Context, property property.Store) (int64, error) {
	v, err := property.Get(ctx, SysVersionKey)
	if err != nil {
		return 0, err
	}
	return v.Int64(), nil
}

// Check stamp a fresh journal with Current, refuse one written by a newer engine
func Check(ctx context.Context, property property.Store) error {
	version, err := ReadSysVersion(ctx, property)
	if err != nil {
		return err
	}

	switch {
	case version == 0:
		return property.Save(ctx, SysVersionKey, Current)
	case version > Current:
		return fmt.Errorf("journal version %d is newer than %d", version, Current)
	}

	return nil
}
