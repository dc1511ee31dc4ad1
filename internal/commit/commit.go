// Package commit binds a player to a fleet layout before the first shot.
// The layout is hashed into a MiMC Merkle tree with one leaf per cell.
// Every leaf is blinded by a key derived from a secret salt, so the root
// and single-cell openings reveal nothing about unopened cells until the
// salt and layout are disclosed at the end of the game.
package commit

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	bnmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

const feSize = fr.Bytes

var ErrInvalidHex = errors.New("invalid hex field element")

// encode field elements as 32-byte big-endian
func feBytes(x *big.Int) []byte {
	b := x.Bytes()
	if len(b) == feSize {
		return b
	}
	out := make([]byte, feSize)
	copy(out[feSize-len(b):], b)
	return out
}

// LeafKey derives the blinding key of leaf idx from the salt.
func LeafKey(salt *big.Int, idx int) *big.Int {
	return HashNode(salt, big.NewInt(int64(idx)))
}

func HashLeaf(key *big.Int, bit uint8) *big.Int {
	return HashNode(key, new(big.Int).SetUint64(uint64(bit)))
}

func HashNode(left, right *big.Int) *big.Int {
	h := bnmimc.NewMiMC()
	h.Write(feBytes(left))
	h.Write(feBytes(right))
	return new(big.Int).SetBytes(h.Sum(nil))
}

// Tree is a binary Merkle tree stored level by level.
// Levels[0] holds the leaves, the last level holds the root.
type Tree struct {
	Depth  int          `json:"depth"`
	Levels [][]*big.Int `json:"levels"`
}

// BuildTree hashes the bits into blinded leaves and pads them with zero
// leaves up to the next power of two.
func BuildTree(bits []uint8, salt *big.Int) (*Tree, error) {
	if len(bits) == 0 {
		return nil, errors.New("no leaves to commit to")
	}

	size := 1
	for size < len(bits) {
		size <<= 1
	}

	leaves := make([]*big.Int, size)
	for i := range leaves {
		var bit uint8
		if i < len(bits) {
			if bits[i] > 1 {
				return nil, fmt.Errorf("leaf %d is not a bit: %d", i, bits[i])
			}
			bit = bits[i]
		}
		leaves[i] = HashLeaf(LeafKey(salt, i), bit)
	}

	levels := [][]*big.Int{leaves}
	for n := size; n > 1; n /= 2 {
		prev := levels[len(levels)-1]
		up := make([]*big.Int, n/2)
		for i := range up {
			up[i] = HashNode(prev[2*i], prev[2*i+1])
		}
		levels = append(levels, up)
	}

	return &Tree{Depth: len(levels) - 1, Levels: levels}, nil
}

func (t *Tree) Root() *big.Int {
	return new(big.Int).Set(t.Levels[len(t.Levels)-1][0])
}

// Path returns the sibling hashes from leaf idx up to the root, with
// dir[i] = 1 when the current node is a right child.
func (t *Tree) Path(idx int) ([]*big.Int, []uint8, error) {
	if idx < 0 || idx >= len(t.Levels[0]) {
		return nil, nil, fmt.Errorf("leaf index out of range: %d", idx)
	}

	path := make([]*big.Int, 0, t.Depth)
	dir := make([]uint8, 0, t.Depth)
	cur := idx
	for level := 0; level < t.Depth; level++ {
		sib := cur + 1
		var d uint8
		if cur%2 == 1 {
			sib = cur - 1
			d = 1
		}
		path = append(path, new(big.Int).Set(t.Levels[level][sib]))
		dir = append(dir, d)
		cur /= 2
	}
	return path, dir, nil
}

type Commitment struct {
	tree *Tree
	salt *big.Int
	root *big.Int
}

func New(bits []uint8, salt *big.Int) (*Commitment, error) {
	if salt == nil || salt.Sign() < 0 || salt.Cmp(fr.Modulus()) >= 0 {
		return nil, errors.New("salt must be a field element")
	}

	tree, err := BuildTree(bits, salt)
	if err != nil {
		return nil, err
	}

	return &Commitment{
		tree: tree,
		salt: new(big.Int).Set(salt),
		root: tree.Root(),
	}, nil
}

// NewRandom commits with a salt drawn from crypto/rand so equal layouts
// produce different roots.
func NewRandom(bits []uint8) (*Commitment, error) {
	saltBytes := make([]byte, feSize)
	if _, err := rand.Read(saltBytes); err != nil {
		return nil, err
	}

	var e fr.Element
	e.SetBytes(saltBytes)
	return New(bits, e.BigInt(new(big.Int)))
}

func (c *Commitment) Root() *big.Int {
	return new(big.Int).Set(c.root)
}

func (c *Commitment) RootHex() string {
	return toHex(c.root)
}

func (c *Commitment) SaltHex() string {
	return toHex(c.salt)
}

// CellProof opens one cell. It carries the leaf key of that cell only,
// never the salt.
type CellProof struct {
	Index int        `json:"index"`
	Bit   uint8      `json:"bit"`
	Key   *big.Int   `json:"key"`
	Path  []*big.Int `json:"path"`
	Dir   []uint8    `json:"dir"`
}

// Prove opens a single cell of the committed layout.
func (c *Commitment) Prove(idx int, bit uint8) (CellProof, error) {
	path, dir, err := c.tree.Path(idx)
	if err != nil {
		return CellProof{}, err
	}

	key := LeafKey(c.salt, idx)
	if HashLeaf(key, bit).Cmp(c.tree.Levels[0][idx]) != 0 {
		return CellProof{}, fmt.Errorf("bit %d does not match committed leaf %d", bit, idx)
	}
	return CellProof{Index: idx, Bit: bit, Key: key, Path: path, Dir: dir}, nil
}

// VerifyCell recomputes the root from a single opened cell.
func VerifyCell(root *big.Int, p CellProof) bool {
	if root == nil || p.Key == nil || len(p.Path) != len(p.Dir) || p.Bit > 1 {
		return false
	}

	curr := HashLeaf(p.Key, p.Bit)
	idx := p.Index
	for i, sib := range p.Path {
		if uint8(idx%2) != p.Dir[i] {
			return false
		}
		if p.Dir[i] == 1 {
			curr = HashNode(sib, curr)
		} else {
			curr = HashNode(curr, sib)
		}
		idx /= 2
	}
	return idx == 0 && curr.Cmp(root) == 0
}

// VerifyCellHex is VerifyCell for a root published as hex.
func VerifyCellHex(rootHex string, p CellProof) (bool, error) {
	root, err := fromHex(rootHex)
	if err != nil {
		return false, err
	}
	return VerifyCell(root, p), nil
}

// VerifyBoard checks a fully revealed layout against a published root.
func VerifyBoard(rootHex, saltHex string, bits []uint8) (bool, error) {
	root, err := fromHex(rootHex)
	if err != nil {
		return false, err
	}
	salt, err := fromHex(saltHex)
	if err != nil {
		return false, err
	}

	c, err := New(bits, salt)
	if err != nil {
		return false, err
	}
	return c.root.Cmp(root) == 0, nil
}

func toHex(x *big.Int) string {
	return fmt.Sprintf("0x%x", x)
}

func fromHex(s string) (*big.Int, error) {
	if !strings.HasPrefix(s, "0x") || len(s) < 3 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	x, ok := new(big.Int).SetString(s[2:], 16)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return x, nil
}
