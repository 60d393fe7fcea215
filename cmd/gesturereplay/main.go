// Command gesturereplay replays scripted gestures against a transformable
// element and logs the events it emits.
package main

func main() {
	Execute()
}
