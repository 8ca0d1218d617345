// Package config loads the devflow.conf build configuration.
//
// The file lives in the toplevel directory of the repository being
// packaged and declares the packages to build, each with the path of its
// generated version file:
//
//	packages:
//	  snf-common:
//	    version_file: common/version.py
//	  snf-tools:
//	    version_file: tools/version.py
//
// The version files are rewritten with the derived version during a run
// and excluded from the package's source diff.
package config
