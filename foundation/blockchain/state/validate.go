package state

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Validate re-checks the entire chain from genesis: every block hash must be
// solved at the block's own stated difficulty, every merkle root must match
// the block's transactions, numbers must be sequential, parent links must
// hold and the genesis block must carry the zero hash sentinel. Blocks are
// checked concurrently since each check only needs its parent.
func (s *State) Validate(ctx context.Context) error {
	s.evHandler("state: Validate: started")
	defer s.evHandler("state: Validate: completed")

	blocks := s.db.CopyBlocks()

	g, _ := errgroup.WithContext(ctx)
	for i := range blocks {
		i := i
		g.Go(func() error {
			if i == 0 {
				return blocks[0].ValidateGenesisBlock(s.evHandler)
			}
			return blocks[i].ValidateBlock(blocks[i-1], s.evHandler)
		})
	}

	return g.Wait()
}

// IsValid reports whether the full chain validates.
func (s *State) IsValid() bool {
	return s.Validate(context.Background()) == nil
}
