package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

// Production is the module binaries start from. There is no *testing.T.
type Production struct {
	dscope.Module
}

func ForProduction() Production {
	return Production{}
}

func (Production) Mode() Mode {
	return ModeProduction
}

func (Production) T() *testing.T {
	return nil
}

// Test runs providers in development mode and hands them the running test.
type Test struct {
	dscope.Module
	t *testing.T
}

func ForTest(t *testing.T) Test {
	return Test{
		t: t,
	}
}

func (m Test) Mode() Mode {
	return ModeDevelopment
}

func (m Test) T() *testing.T {
	return m.t
}
