// graphbulk bulk-loads node and relationship CSV files into an empty graph
// on a Redis-protocol graph server.
package main

func main() {
	execute()
}
