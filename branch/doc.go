// Package branch classifies git branch names according to the git-flow
// naming convention and maps each branch type to its debian packaging
// branch.
//
// Classification is a pure function of the branch name: it never inspects
// repository state, so callers can classify names from any source (HEAD,
// refs, user input) and test the mapping exhaustively.
//
//	typ, err := branch.Classify("feature/accounts")
//	deb, err := branch.DebianBranch("feature/accounts") // "debian-feature-accounts"
package branch
