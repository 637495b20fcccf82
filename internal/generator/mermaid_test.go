package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiwiki/aiwiki/internal/model"
)

func TestRenderERDEntitiesAndEdges(t *testing.T) {
	erd := RenderERD(fixtureAnalysis())

	assert.True(t, strings.HasPrefix(erd, "```mermaid\nerDiagram\n"))
	assert.Contains(t, erd, "    User {")
	assert.Contains(t, erd, "    Team {")
	assert.Contains(t, erd, "string email_address \"UK\"")
	assert.Contains(t, erd, "int id \"NOT NULL\"")
	assert.Contains(t, erd, "fk team")
	assert.Contains(t, erd, "m2m roles")
	assert.Contains(t, erd, "User ||--o{ Team : Team")
	assert.Contains(t, erd, "User }o--o{ Role : Roles")
}

func TestRenderERDNoModels(t *testing.T) {
	erd := RenderERD(&model.Analysis{})
	assert.Contains(t, erd, "NO_MODELS")
}

func TestDedupeSymmetricManyToMany(t *testing.T) {
	rels := []model.Relationship{
		{From: "User", To: "Role", FieldName: "Roles", Kind: model.RelationManyToMany},
		{From: "Role", To: "User", FieldName: "Users", Kind: model.RelationManyToMany},
	}
	out := dedupeEdges(rels)

	require.Len(t, out, 1)
	// first-encountered direction wins
	assert.Equal(t, "User", out[0].From)
	assert.Equal(t, "Role", out[0].To)
}

func TestDedupeKeepsDistinctForeignKeys(t *testing.T) {
	rels := []model.Relationship{
		{From: "Order", To: "User", FieldName: "Buyer", Kind: model.RelationForeignKey},
		{From: "User", To: "Order", FieldName: "LastOrder", Kind: model.RelationForeignKey},
	}
	out := dedupeEdges(rels)
	// foreign keys are directional: both edges stay
	require.Len(t, out, 2)
}

func TestDedupeRepeatedTripleCollapses(t *testing.T) {
	rels := []model.Relationship{
		{From: "Order", To: "User", FieldName: "Buyer", Kind: model.RelationForeignKey},
		{From: "Order", To: "User", FieldName: "Seller", Kind: model.RelationForeignKey},
	}
	out := dedupeEdges(rels)

	// one edge per unique (source, target, relation type) triple
	require.Len(t, out, 1)
	assert.Equal(t, "Buyer", out[0].FieldName)
}

func TestDiagramDocumentWrapsERD(t *testing.T) {
	doc := RenderDiagramDocument(fixtureAnalysis())
	assert.True(t, strings.HasPrefix(doc, "# Entity Relationship Diagram\n\n```mermaid"))
	assert.True(t, strings.HasSuffix(doc, "```\n"))
}
