package github_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/kenjiO/repo-activity/pkg/integrations/github"
)

func ExampleClient_LatestCommitDate() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"commit": {"author": {"date": "2017-02-07T16:01:33Z"}}},
			{"commit": {"author": {"date": "2017-02-09T16:01:33Z"}}},
			{"commit": {"author": {"date": "2017-02-08T16:01:33Z"}}}
		]`)
	}))
	defer server.Close()

	client := github.NewClient(server.URL)
	date, err := client.LatestCommitDate(context.Background(), "userX/repoY")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(date)
	// Output: 2017-02-09T16:01:33Z
}

func ExampleValidRepoName() {
	fmt.Println(github.ValidRepoName("userX/repo-y"))
	fmt.Println(github.ValidRepoName("user_x/repoY"))
	fmt.Println(github.ValidRepoName(42))
	// Output:
	// true
	// false
	// false
}

func ExampleClient_CommitsURL() {
	client := github.NewClient("")
	fmt.Println(client.CommitsURL("userX/repoY"))
	// Output: https://api.github.com/repos/userX/repoY/commits
}

func ExampleLatestDate() {
	latest, _ := github.LatestDate([]string{
		"2017-02-06T16:01:33Z",
		"2017-02-09T16:01:33Z",
		"2017-02-08T16:01:33Z",
	})
	fmt.Println(latest)
	// Output: 2017-02-09T16:01:33Z
}
