package main

//go:generate echo "Generating SQLC files..."
//go:generate bash -c "export PATH=$$PATH:~/go/bin && sqlc generate -f ../storage/sqlc.yaml"
//go:generate echo "SQLC files generated"

// This file contains go:generate directives that regenerate the SQLC
// code for this project. Run:
//
// go generate ./...
//
// from the project root directory.
