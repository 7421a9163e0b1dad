package gqlparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOperation_Shorthand(t *testing.T) {
	op, err := Operation(`{ shipments { edges } }`, "")
	require.NoError(t, err)
	require.Equal(t, "shipments", op)
}

func TestOperation_NamedQuery(t *testing.T) {
	op, err := Operation(`query GetShipments($page: Int) { shipments(page: $page) { edges } }`, "")
	require.NoError(t, err)
	require.Equal(t, "shipments", op)
}

func TestOperation_Mutation(t *testing.T) {
	op, err := Operation(`mutation { deleteShipment(id: "abc") }`, "")
	require.NoError(t, err)
	require.Equal(t, "deleteShipment", op)
}

func TestOperation_KeywordInComment(t *testing.T) {
	// A mention of another operation in a comment must not win.
	query := "# fetch createShipment later\nquery { shipment(id: \"x\") { id } }"
	op, err := Operation(query, "")
	require.NoError(t, err)
	require.Equal(t, "shipment", op)
}

func TestOperation_KeywordInStringArgument(t *testing.T) {
	query := `query { shipments(filter: { search: "deleteShipment" }) { edges } }`
	op, err := Operation(query, "")
	require.NoError(t, err)
	require.Equal(t, "shipments", op)
}

func TestOperation_AliasResolvesToRealField(t *testing.T) {
	op, err := Operation(`query { results: shipments { edges } }`, "")
	require.NoError(t, err)
	require.Equal(t, "shipments", op)
}

func TestOperation_BlockString(t *testing.T) {
	query := "mutation { createShipment(input: { notes: \"\"\"multi\nline \"quoted\" note\"\"\", origin: \"A\" }) { id } }"
	op, err := Operation(query, "")
	require.NoError(t, err)
	require.Equal(t, "createShipment", op)
}

func TestOperation_OperationNameSelects(t *testing.T) {
	query := `
		query ListThem { shipments { edges } }
		mutation RemoveIt($id: ID!) { deleteShipment(id: $id) }
	`
	op, err := Operation(query, "RemoveIt")
	require.NoError(t, err)
	require.Equal(t, "deleteShipment", op)

	op, err = Operation(query, "ListThem")
	require.NoError(t, err)
	require.Equal(t, "shipments", op)
}

func TestOperation_MultipleWithoutNameIsAmbiguous(t *testing.T) {
	query := `
		query A { shipments { edges } }
		query B { me { id } }
	`
	_, err := Operation(query, "")
	require.ErrorIs(t, err, ErrAmbiguous)
}

func TestOperation_UnknownOperationName(t *testing.T) {
	_, err := Operation(`query A { me { id } }`, "B")
	require.ErrorIs(t, err, ErrUnknownOperation)
}

func TestOperation_EmptyQuery(t *testing.T) {
	_, err := Operation("   \n\t", "")
	require.ErrorIs(t, err, ErrEmptyQuery)
}

func TestOperation_FragmentSpreadFirstIsIndeterminate(t *testing.T) {
	query := `
		fragment Core on Shipment { id trackingNumber }
		query { ...Core }
	`
	_, err := Operation(query, "")
	require.ErrorIs(t, err, ErrIndeterminate)
}

func TestOperation_FragmentDefinitionIsNotAnOperation(t *testing.T) {
	query := `
		fragment Core on Shipment { id }
		query { shipment(id: "x") { ...Core } }
	`
	op, err := Operation(query, "")
	require.NoError(t, err)
	require.Equal(t, "shipment", op)
}

func TestOperation_SubscriptionRejected(t *testing.T) {
	_, err := Operation(`subscription { shipments { edges } }`, "")
	require.Error(t, err)
}

func TestOperation_DirectivesSkipped(t *testing.T) {
	op, err := Operation(`query Q @cached(ttl: 60) { myRole { role } }`, "")
	require.NoError(t, err)
	require.Equal(t, "myRole", op)
}
