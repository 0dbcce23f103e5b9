package rewrites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"bindport.dev/pkg/bindport/internal/adapter"
	"bindport.dev/pkg/bindport/internal/emitter"
	"bindport.dev/pkg/bindport/internal/node"
	"bindport.dev/pkg/bindport/internal/rules"
)

func defaultContext(t *testing.T, file string) *Context {
	t.Helper()

	catalog, err := rules.Default()
	require.NoError(t, err)

	return NewContext(catalog, file)
}

func catalogContext(t *testing.T, yaml string) *Context {
	t.Helper()

	catalog, err := rules.Parse([]byte(yaml))
	require.NoError(t, err)

	return NewContext(catalog, "Test.java")
}

func parseUnit(t *testing.T, src string) *node.Unit {
	t.Helper()

	unit, err := adapter.NewLocalJavaFileAdapter().Parse(context.Background(), "Test.java", []byte(src))
	require.NoError(t, err)

	return unit
}

func call(receiver node.Node, name string, args ...node.Node) *node.MethodCall {
	return node.Call(receiver, name, node.NewArguments(args...))
}

func print(n node.Node) string {
	return emitter.Print(n)
}
