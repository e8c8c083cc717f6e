package internal

// CreateTestBlock creates a code block with the given identity
func CreateTestBlock(id, blockType, sortingKey, content string) Block {
	return Block{
		ID:         id,
		Type:       blockType,
		SortingKey: sortingKey,
		Content:    content,
	}
}

// CreateTestCell creates a host cell with the given metadata
func CreateTestCell(kind CellKind, source string, metadata map[string]any) *Cell {
	return &Cell{
		Kind:       kind,
		Source:     source,
		LanguageID: "python",
		Metadata:   metadata,
	}
}

// CreateTestPocketCell creates a code cell whose pocket holds the given fields
func CreateTestPocketCell(source string, pocket map[string]any) *Cell {
	return CreateTestCell(CellKindCode, source, map[string]any{PocketKey: pocket})
}

// CreateTestNotebook creates a Deepnote notebook holding blocks
func CreateTestNotebook(id string, blocks ...Block) *DeepnoteNotebook {
	return &DeepnoteNotebook{
		ID:     id,
		Name:   "Notebook " + id,
		Blocks: blocks,
	}
}
