// tallyctl builds split reports and spreadsheet exports from a folder
// file on disk, without a running server.
package main

func main() {
	execute()
}
