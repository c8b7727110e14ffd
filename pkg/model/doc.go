// Package model describes the base objects manipulated by datatool.
//
// The object model for datatool is composed of:
//
//	Datasets:
//	  A dataset is a collection of files, optionally named, with tags and properties.
//	  Datasets are identified by a random 128-bit token, rendered as hex.
//
//	Data files:
//	  A data file is identified by its content hash, not by its path. Two files with
//	  identical bytes at different locations are the same data file.
//
//	File instances:
//	  An instance is one place where the content of a data file has been observed,
//	  with the size and modification time seen at that moment. Instances are never removed.
//
// Datasets and data files share a single identity namespace, held by a Store.
package model
