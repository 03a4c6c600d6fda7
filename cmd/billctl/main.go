// Command billctl runs operational tasks against a billbook deployment:
// schema migrations, HSN master import and issuing access tokens.
package main

func main() {
	Execute()
}
