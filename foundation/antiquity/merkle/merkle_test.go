package merkle_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/rustchain/blockchain/foundation/antiquity/merkle"
)

// entry is a minimal hashable value for exercising the tree.
type entry struct {
	data string
}

func (e entry) Hash() ([]byte, error) {
	h := sha256.Sum256([]byte(e.data))
	return h[:], nil
}

func (e entry) Equals(other entry) bool {
	return e.data == other.data
}

var entries = []entry{
	{data: "RTCaaaa:3.5:58333333"},
	{data: "RTCbbbb:2.5:41666666"},
	{data: "RTCcccc:1.5:25000000"},
}

func Test_Determinism(t *testing.T) {
	tree1, err := merkle.NewTree(entries)
	if err != nil {
		t.Fatalf("Should be able to construct a tree: %s", err)
	}

	tree2, err := merkle.NewTree(entries)
	if err != nil {
		t.Fatalf("Should be able to construct a second tree: %s", err)
	}

	if tree1.RootHex() != tree2.RootHex() {
		t.Logf("got: %s", tree2.RootHex())
		t.Logf("exp: %s", tree1.RootHex())
		t.Fatal("Should reproduce the same root for the same ordered values.")
	}

	// The tree is order-sensitive.
	permuted := []entry{entries[1], entries[0], entries[2]}
	tree3, err := merkle.NewTree(permuted)
	if err != nil {
		t.Fatalf("Should be able to construct a permuted tree: %s", err)
	}

	if tree3.RootHex() == tree1.RootHex() {
		t.Fatal("Should produce a different root for a permuted order.")
	}
}

func Test_OddLeafDuplication(t *testing.T) {
	tree, err := merkle.NewTree(entries)
	if err != nil {
		t.Fatalf("Should be able to construct a tree: %s", err)
	}

	// Three values require a duplicated fourth leaf.
	if len(tree.Leafs) != 4 {
		t.Fatalf("Should have 4 leafs after duplication, got %d.", len(tree.Leafs))
	}

	values := tree.Values()
	if len(values) != len(entries) {
		t.Fatalf("Should get back the original %d values, got %d.", len(entries), len(values))
	}

	if err := tree.Verify(); err != nil {
		t.Fatalf("Should verify the tree: %s", err)
	}
}

func Test_Proof(t *testing.T) {
	tree, err := merkle.NewTree(entries)
	if err != nil {
		t.Fatalf("Should be able to construct a tree: %s", err)
	}

	proof, order, err := tree.Proof(entries[1])
	if err != nil {
		t.Fatalf("Should be able to produce a proof: %s", err)
	}

	// Replay the proof against the leaf hash.
	current, _ := entries[1].Hash()
	for i, sibling := range proof {
		var data []byte
		if order[i] == 0 {
			data = append(data, sibling...)
			data = append(data, current...)
		} else {
			data = append(data, current...)
			data = append(data, sibling...)
		}
		h := sha256.Sum256(data)
		current = h[:]
	}

	h := tree.RootHex()
	if got := "0x" + hex.EncodeToString(current); got != h {
		t.Logf("got: %s", got)
		t.Logf("exp: %s", h)
		t.Fatal("Should replay the proof to the root.")
	}

	if _, _, err := tree.Proof(entry{data: "missing"}); err == nil {
		t.Fatal("Should not produce a proof for a missing value.")
	}
}

func Test_EmptyTree(t *testing.T) {
	if _, err := merkle.NewTree([]entry{}); err == nil {
		t.Fatal("Should not construct a tree with no content.")
	}
}
