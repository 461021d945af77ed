package merkle_test

import (
	"crypto/sha256"
	"testing"

	"github.com/minechain/minechain/foundation/blockchain/merkle"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// data implements the Hashable interface for testing.
type data struct {
	Value string
}

func (d data) Hash() ([]byte, error) {
	h := sha256.Sum256([]byte(d.Value))
	return h[:], nil
}

func (d data) Equals(other data) bool {
	return d.Value == other.Value
}

func TestTree(t *testing.T) {
	t.Log("Given the need to validate building merkle trees.")
	{
		t.Logf("\tTest 0:\tWhen committing to an even number of values.")
		{
			values := []data{{"a"}, {"b"}, {"c"}, {"d"}}

			tree, err := merkle.NewTree(values)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the tree: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct the tree.", success)

			if err := tree.Verify(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to verify the tree: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to verify the tree.", success)

			if len(tree.RootHex()) != 64 {
				t.Fatalf("\t%s\tTest 0:\tShould get a 64 character root, got %d.", failed, len(tree.RootHex()))
			}
			t.Logf("\t%s\tTest 0:\tShould get a 64 character root.", success)
		}

		t.Logf("\tTest 1:\tWhen committing to an odd number of values.")
		{
			odd := []data{{"a"}, {"b"}, {"c"}}
			padded := []data{{"a"}, {"b"}, {"c"}, {"c"}}

			oddTree, err := merkle.NewTree(odd)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct the odd tree: %v", failed, err)
			}
			paddedTree, err := merkle.NewTree(padded)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct the padded tree: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to construct both trees.", success)

			if oddTree.RootHex() != paddedTree.RootHex() {
				t.Fatalf("\t%s\tTest 1:\tShould duplicate the final leaf: got %s, exp %s.", failed, oddTree.RootHex(), paddedTree.RootHex())
			}
			t.Logf("\t%s\tTest 1:\tShould duplicate the final leaf.", success)
		}

		t.Logf("\tTest 2:\tWhen committing to the same values in a different order.")
		{
			treeA, err := merkle.NewTree([]data{{"a"}, {"b"}, {"c"}, {"d"}})
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to construct the tree: %v", failed, err)
			}
			treeB, err := merkle.NewTree([]data{{"d"}, {"c"}, {"b"}, {"a"}})
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to construct the tree: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould be able to construct both trees.", success)

			if treeA.RootHex() == treeB.RootHex() {
				t.Fatalf("\t%s\tTest 2:\tShould get a different root for a different order.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould get a different root for a different order.", success)
		}

		t.Logf("\tTest 3:\tWhen regenerating a tree from the same values.")
		{
			values := []data{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}}

			tree, err := merkle.NewTree(values)
			if err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould be able to construct the tree: %v", failed, err)
			}
			root := tree.RootHex()

			if err := tree.Generate(tree.Values()); err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould be able to regenerate the tree: %v", failed, err)
			}
			t.Logf("\t%s\tTest 3:\tShould be able to regenerate the tree.", success)

			if tree.RootHex() != root {
				t.Fatalf("\t%s\tTest 3:\tShould get the same root: got %s, exp %s.", failed, tree.RootHex(), root)
			}
			t.Logf("\t%s\tTest 3:\tShould get the same root.", success)
		}

		t.Logf("\tTest 4:\tWhen committing to no values.")
		{
			if _, err := merkle.NewTree([]data{}); err == nil {
				t.Fatalf("\t%s\tTest 4:\tShould not be able to construct an empty tree.", failed)
			}
			t.Logf("\t%s\tTest 4:\tShould not be able to construct an empty tree.", success)
		}
	}
}
