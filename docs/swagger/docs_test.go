package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formParams(t *testing.T, doc map[string]any, route string) []string {
	t.Helper()
	paths := doc["paths"].(map[string]any)
	op := paths[route].(map[string]any)["post"].(map[string]any)

	var names []string
	for _, p := range op["parameters"].([]any) {
		names = append(names, p.(map[string]any)["name"].(string))
	}
	return names
}

func TestDocumentedFormFields(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	shared := []string{"old", "new", "old_source", "new_source", "old_sheet", "new_sheet",
		"preset", "phrases", "one_sided_nulls", "encoding", "delimiter"}

	reconcile := formParams(t, doc, "/audit/reconcile")
	export := formParams(t, doc, "/audit/export")
	for _, name := range shared {
		assert.Contains(t, reconcile, name)
		assert.Contains(t, export, name)
	}
	for _, name := range []string{"set", "split_by_field", "store", "name"} {
		assert.Contains(t, export, name)
	}
}
