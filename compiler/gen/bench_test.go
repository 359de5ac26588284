package gen_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/prefroom/compiler/gen"
	"github.com/syssam/prefroom/compiler/gen/golang"
	"github.com/syssam/prefroom/compiler/load"
)

func benchGraph(b *testing.B) *gen.Graph {
	b.Helper()
	s, err := load.Load(filepath.Join("..", "load", "testdata", "schema.yaml"))
	require.NoError(b, err)
	cfg, err := gen.NewConfig(gen.WithPackage("example.com/app/prefs"), gen.WithTarget(b.TempDir()))
	require.NoError(b, err)
	g, err := gen.NewGraph(cfg, s)
	require.NoError(b, err)
	return g
}

func BenchmarkGraph_Artifacts(b *testing.B) {
	g := benchGraph(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := g.Artifacts()
		require.NoError(b, err)
	}
}

func BenchmarkGenerate(b *testing.B) {
	g := benchGraph(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		require.NoError(b, golang.Generate(context.Background(), g))
	}
}
