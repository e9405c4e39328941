// Command formkit compiles field descriptor documents and checks candidate
// records against them.
package main

func main() {
	Execute()
}
