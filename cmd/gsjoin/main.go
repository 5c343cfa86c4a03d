// Command gsjoin runs the user side of the group signature join protocol
// over files: "gsjoin start" creates a join request and stores the secret in
// a session file, "gsjoin finish" validates the issuer's response.
package main

func main() {
	Execute()
}
