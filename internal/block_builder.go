package internal

// CreateBlockFromPocket builds a Deepnote block for a host cell at the given
// zero-based position. Stored pocket fields win; missing ones are generated:
// a random hex id, the "code" type, "a"+position as sorting key, and no
// execution count. The block metadata is the cell metadata minus the pocket.
// Content and outputs are left for the caller to fill.
func CreateBlockFromPocket(cell *Cell, index int) *Block {
	pocket, _ := ExtractPocketFromCellMetadata(cell)

	block := &Block{
		ID:         GenerateBlockID(),
		Type:       DefaultBlockType,
		SortingKey: GenerateSortingKey(index),
		Content:    "",
	}
	if id, ok := pocket.ID(); ok {
		block.ID = id
	}
	if blockType, ok := pocket.Type(); ok {
		block.Type = blockType
	}
	if sortingKey, ok := pocket.SortingKey(); ok {
		block.SortingKey = sortingKey
	}
	if count, ok := pocket.ExecutionCount(); ok {
		block.ExecutionCount = intPtr(count)
	}

	if cell != nil {
		block.Metadata = metadataWithoutPocket(cell.Metadata)
	}
	return block
}

// CreateCellFromBlock builds the host cell for a block. The block identity is
// written into the pocket and outputs go through the given converter; a nil
// converter leaves the cell without outputs. Metadata keys named like a
// pocket field do not survive and are logged.
func CreateCellFromBlock(block *Block, outputs *CellOutputConverter) *Cell {
	if block == nil {
		return nil
	}

	metadata := make(map[string]any, len(block.Metadata)+len(deepnoteBlockFields))
	for k, v := range block.Metadata {
		if k == PocketKey {
			continue
		}
		if isDeepnoteBlockField(k) {
			LogWarn("Block %s metadata key %q is shadowed by the block's own %s field", block.ID, k, k)
		}
		metadata[k] = v
	}
	if block.ID != "" {
		metadata[PocketFieldID] = block.ID
	}
	if block.Type != "" {
		metadata[PocketFieldType] = block.Type
	}
	if block.SortingKey != "" {
		metadata[PocketFieldSortingKey] = block.SortingKey
	}
	if block.ExecutionCount != nil {
		metadata[PocketFieldExecutionCount] = *block.ExecutionCount
	}

	cell := &Cell{
		Kind:       cellKindForBlock(block.Type),
		Source:     block.Content,
		LanguageID: languageForBlock(block.Type),
		Metadata:   metadata,
	}
	AddPocketToCellMetadata(cell)

	if outputs != nil && len(block.Outputs) > 0 {
		cell.Outputs = outputs.OutputsToHost(block.Outputs)
	}
	return cell
}
