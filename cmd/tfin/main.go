// The tfin command runs financial discrete-event simulations from the
// command line.
package main

func main() {
	Execute()
}
