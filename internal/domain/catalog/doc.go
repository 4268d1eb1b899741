// Package catalog lists the programs that can be launched as desktop windows.
//
// Built-in programs come from Default. Extra programs are read from YAML or
// TOML files below a catalog directory:
//
//	programs:
//	  - id: resume
//	    title: resume.txt
//	    width: 420
//	    body:
//	      - "Things I have built."
//	    links:
//	      - label: GitHub
//	        url: https://github.com/monty
//
// A file program replaces a built-in with the same id.
package catalog
