package integrations_test

import (
	"fmt"

	"github.com/kenjiO/repo-activity/pkg/integrations"
)

func ExampleNormalizeRepoURL() {
	// Various repository URL formats are normalized to HTTPS
	fmt.Println(integrations.NormalizeRepoURL("git@github.com:user/repo.git"))
	fmt.Println(integrations.NormalizeRepoURL("git://github.com/user/repo"))
	fmt.Println(integrations.NormalizeRepoURL("git+https://github.com/user/repo.git"))
	fmt.Println(integrations.NormalizeRepoURL("https://github.com/user/repo"))
	// Output:
	// https://github.com/user/repo
	// https://github.com/user/repo
	// https://github.com/user/repo
	// https://github.com/user/repo
}

func ExampleJoinURL() {
	fmt.Println(integrations.JoinURL("https://api.github.com/repos", "userX/repoY", "commits"))
	fmt.Println(integrations.JoinURL("http://127.0.0.1:8080/", "userX/repoY", "commits"))
	// Output:
	// https://api.github.com/repos/userX/repoY/commits
	// http://127.0.0.1:8080/userX/repoY/commits
}
