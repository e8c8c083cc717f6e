package internal

import (
	"fmt"
	"sort"
)

// Host notebook metadata keys naming the Deepnote notebook a host notebook came from
const (
	NotebookMetaID   = "deepnoteNotebookId"
	NotebookMetaName = "deepnoteNotebookName"
)

// NotebookConverter converts whole notebooks between Deepnote and host form
type NotebookConverter struct {
	outputs      *CellOutputConverter
	deduplicator *Deduplicator

	// DedupeBlockIDs reassigns repeated block ids when converting to Deepnote
	DedupeBlockIDs bool
}

// NewNotebookConverter creates a converter around a cell output converter
func NewNotebookConverter(outputs *CellOutputConverter) *NotebookConverter {
	if outputs == nil {
		outputs = NewCellOutputConverter(nil)
	}
	return &NotebookConverter{
		outputs:        outputs,
		deduplicator:   NewDeduplicator(),
		DedupeBlockIDs: true,
	}
}

// ToHost converts a Deepnote notebook into host cells ordered by sorting key.
// Blocks with equal keys keep their stored order.
func (c *NotebookConverter) ToHost(nb *DeepnoteNotebook) (*NotebookData, error) {
	if nb == nil {
		return nil, fmt.Errorf("notebook is nil")
	}

	blocks := SortBlocks(nb.Blocks)
	cells := make([]Cell, 0, len(blocks))
	for i := range blocks {
		cells = append(cells, *CreateCellFromBlock(&blocks[i], c.outputs))
	}

	return &NotebookData{
		Cells: cells,
		Metadata: map[string]any{
			NotebookMetaID:   nb.ID,
			NotebookMetaName: nb.Name,
		},
	}, nil
}

// ToDeepnote converts host cells into Deepnote blocks. Cells without a stored
// block kind become "markdown" blocks when they are markup cells.
func (c *NotebookConverter) ToDeepnote(data *NotebookData) ([]Block, error) {
	if data == nil {
		return nil, fmt.Errorf("notebook data is nil")
	}

	blocks := make([]Block, 0, len(data.Cells))
	for i := range data.Cells {
		cell := &data.Cells[i]
		block := CreateBlockFromPocket(cell, i)

		pocket, _ := ExtractPocketFromCellMetadata(cell)
		if _, hasType := pocket.Type(); !hasType && cell.Kind == CellKindMarkup {
			block.Type = "markdown"
		}
		block.Content = cell.Source
		block.Outputs = c.outputs.OutputsToDeepnote(cell.Outputs)
		blocks = append(blocks, *block)
	}

	if c.DedupeBlockIDs {
		if n := c.deduplicator.EnsureUniqueBlockIDs(blocks); n > 0 {
			LogInfo("Reassigned %d duplicate block id(s)", n)
		}
	}
	return blocks, nil
}

// ApplyToNotebook replaces a Deepnote notebook's blocks with converted host cells
func (c *NotebookConverter) ApplyToNotebook(data *NotebookData, nb *DeepnoteNotebook) error {
	if nb == nil {
		return fmt.Errorf("notebook is nil")
	}
	blocks, err := c.ToDeepnote(data)
	if err != nil {
		return err
	}
	nb.Blocks = blocks
	return nil
}

// SortBlocks returns a copy of blocks ordered by sorting key
func SortBlocks(blocks []Block) []Block {
	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return CompareSortingKeys(sorted[i].SortingKey, sorted[j].SortingKey) < 0
	})
	return sorted
}
