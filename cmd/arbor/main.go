// Command arbor grows L-system structures from the command line and serves
// them over HTTP.
package main

func main() {
	Execute()
}
