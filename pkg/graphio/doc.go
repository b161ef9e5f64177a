// Package graphio provides JSON import and export for structures.
//
// The format has a shape tag, optional freeform metadata, and two arrays:
//
//	{
//	  "shape": "square",
//	  "cells": ["0,0", "1,0", "0,1", "1,1"],
//	  "links": [["0,0", "1,0"], ["0,0", "0,1"], ["1,0", "1,1"]]
//	}
//
// Cells and links keep their insertion order, so export is deterministic
// and import reproduces the original traversal and rendering order. A
// [Codec] translates between a cell type and its string form; ready-made
// codecs exist for the shapes in package grid.
//
// Decoding validates the document the same way structure construction
// does: links must name listed cells and may not be self links. Structure
// options passed to the read functions are forwarded, letting grids
// reattach shape-specific behavior to imported structures.
package graphio
