package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddDeduplicates(t *testing.T) {
	g := NewGraph()
	tr := Triple{S: IRI("s"), P: IRI("p"), O: Literal("o")}

	assert.True(t, g.Add(tr))
	assert.False(t, g.Add(tr))
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has(tr.S, tr.P, tr.O))
}

func TestGraph_Indexes(t *testing.T) {
	g := NewGraph()
	g.Add(Triple{S: IRI("s1"), P: Type, O: IRI("C")})
	g.Add(Triple{S: IRI("s2"), P: Type, O: IRI("C")})
	g.Add(Triple{S: IRI("s1"), P: IRI("p"), O: Literal("x")})
	g.Add(Triple{S: IRI("s1"), P: IRI("p"), O: LangLiteral("x", "EN")})

	assert.Equal(t, []Term{IRI("s1"), IRI("s2")}, g.Subjects())
	assert.Equal(t, []Term{IRI("s1"), IRI("s2")}, g.SubjectsWith(Type, IRI("C")))
	assert.Equal(t, []Term{Literal("x"), LangLiteral("x", "EN")}, g.Objects(IRI("s1"), IRI("p")))
	assert.Equal(t, []Term{IRI("C")}, g.Types(IRI("s2")))
	assert.Equal(t, []Term{Type, IRI("p")}, g.Predicates(IRI("s1")))

	assert.Len(t, g.Match(Term{}, Type, Term{}), 2)
	assert.Len(t, g.Match(IRI("s1"), Term{}, Term{}), 3)
	assert.Len(t, g.Match(IRI("s1"), IRI("p"), Literal("x")), 1)
	assert.Len(t, g.Match(Term{}, Term{}, Term{}), 4)
}

func TestGraph_CloneIsIndependent(t *testing.T) {
	g := NewGraph()
	g.Add(Triple{S: IRI("s"), P: IRI("p"), O: IRI("o")})

	c := g.Clone()
	c.Add(Triple{S: IRI("s"), P: IRI("p"), O: IRI("o2")})

	assert.Equal(t, 1, g.Len())
	assert.Equal(t, 2, c.Len())
}

func TestGraph_List(t *testing.T) {
	g, err := ParseString(`<s> <p> ( "a" "b" "c" ) .`, FormatTurtle, "")
	require.NoError(t, err)

	head, ok := g.Object(IRI("s"), IRI("p"))
	require.True(t, ok)
	items, ok := g.List(head)
	require.True(t, ok)
	assert.Equal(t, []Term{Literal("a"), Literal("b"), Literal("c")}, items)

	_, ok = g.List(IRI("s"))
	assert.False(t, ok, "a non-list node is not a list")
}

func TestTerm_Strings(t *testing.T) {
	assert.Equal(t, "<http://x>", IRI("http://x").String())
	assert.Equal(t, `"v"@de`, LangLiteral("v", "de").String())
	assert.Equal(t, `"1"^^<`+XSDInteger+`>`, TypedLiteral("1", XSDInteger).String())

	assert.Equal(t, "v", Literal("v").LiteralString())
	assert.Equal(t, "v@de", LangLiteral("v", "de").LiteralString())
	assert.Equal(t, "colour@en-GB", LangLiteral("colour", "en-GB").LiteralString())
	assert.True(t, SameLang("en-GB", "EN-gb"))
	assert.False(t, SameLang("en", "en-GB"))
	assert.Equal(t, "1^^"+XSDInteger, TypedLiteral("1", XSDInteger).LiteralString())
	assert.Equal(t, Literal("v"), TypedLiteral("v", ""))
	assert.Equal(t, Literal("v"), TypedLiteral("v", XSDString))
}
