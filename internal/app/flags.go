package app

import (
	"fmt"
	"os"
)

// pathValue implements pflag.Value to provide a custom type name in help text.
type pathValue string

func (p *pathValue) String() string {
	return string(*p)
}

func (p *pathValue) Set(v string) error {
	*p = pathValue(v)
	return nil
}

func (p *pathValue) Type() string {
	return "<path>"
}

// dirValue is a pathValue that must name an existing directory.
type dirValue string

func (d *dirValue) String() string {
	return string(*d)
}

func (d *dirValue) Set(v string) error {
	info, err := os.Stat(v)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", v)
	}
	*d = dirValue(v)
	return nil
}

func (d *dirValue) Type() string {
	return "<dir>"
}
