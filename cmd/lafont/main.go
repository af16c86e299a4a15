// Command lafont reduces interaction combinator nets and shows them as a 3D
// force-directed graph.
package main

func main() {
	Execute()
}
