package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

func TestDefaultRegistersAllAnalyses(t *testing.T) {
	t.Parallel()

	registry, err := Default(nil)
	require.NoError(t, err)

	want := []string{"naive-bayes", "svm", "friedman", "influence", "cva", "stress"}
	list := registry.List()
	require.Len(t, list, len(want))
	for i, id := range want {
		require.Equal(t, id, list[i].Metadata().ID)
	}
}

func TestDefaultAnalysesHaveValidWizardConfigs(t *testing.T) {
	t.Parallel()

	registry, err := Default(nil)
	require.NoError(t, err)

	submit := func(ctx context.Context) (any, error) { return nil, nil }
	for _, a := range registry.List() {
		cfg := a.WizardConfig()
		_, err := wizard.New(cfg, submit)
		require.NoError(t, err, "%s wizard config", a.Metadata().ID)
		require.NotEmpty(t, a.Metadata().Title)
		require.NotEmpty(t, a.Metadata().Description)
	}
}
