// Package metadata reads and writes ARD tile metadata documents.
//
// # Overview
//
// An ARD document describes one tile and up to three contributing scenes:
//
//	<ard_metadata version="1.0" xmlns="http://ard.cr.usgs.gov/v1">
//	  <tile_metadata>
//	    <global_metadata> ... </global_metadata>
//	    <bands> <band ...> ... </band> </bands>
//	  </tile_metadata>
//	  <scene_metadata>
//	    <index>1</index>
//	    <global_metadata> ... </global_metadata>
//	    <bands> ... </bands>
//	  </scene_metadata>
//	</ard_metadata>
//
// Parse builds a tree from the input and maps it onto a Document in one
// pass. Elements outside the ARD namespace are skipped without affecting
// state. Unknown elements and attributes are logged as warnings; structural
// problems fail the parse with an *Error whose kind matches one of the
// sentinels in pkg/ardmeta.
//
// Write and Append emit a Document back out. Optional fields still at their
// fill sentinel are left out, so a written document parses back to an equal
// model.
//
// # Fill values
//
// Fields the document did not set hold FillInt, FillFloat or FillString.
// Float sentinels are compared with IsFillFloat.
//
// # Usage
//
//	doc, err := metadata.ParseFile(path, logger)
//	if errors.Is(err, ardmeta.ErrTooManyScenes) {
//	    // reject the tile
//	}
//	result := metadata.Validate(doc)
//	err = metadata.AppendFile(out, doc, extraBands)
package metadata
