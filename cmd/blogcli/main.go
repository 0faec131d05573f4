// Command blogcli is an interactive console client for the blog API.
// Register or log in to obtain a bearer token, then manage posts.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type tokenReply struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Error   string `json:"error"`
}

type messageReply struct {
	Message string `json:"message"`
	PostID  uint   `json:"postId"`
	Error   string `json:"error"`
}

type post struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type cli struct {
	client *resty.Client
	in     *bufio.Scanner
	token  string
}

func main() {
	baseURL := os.Getenv("BLOG_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	c := &cli{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(15 * time.Second),
		in: bufio.NewScanner(os.Stdin),
	}
	c.run()
}

func (c *cli) run() {
	for {
		fmt.Println()
		if c.token == "" {
			fmt.Println("=== Not logged in. Available commands: ===")
			fmt.Println("1) register  - create an account")
			fmt.Println("2) login     - sign in (obtain token)")
			fmt.Println("0) exit")
		} else {
			fmt.Println("=== Logged in. Available commands: ===")
			fmt.Println("1) create  - create a new post")
			fmt.Println("2) delete  - delete a post by id")
			fmt.Println("3) update  - update a post (PATCH)")
			fmt.Println("4) list    - list all posts")
			fmt.Println("5) get     - show one post by id")
			fmt.Println("6) logout  - forget the token")
			fmt.Println("0) exit")
		}

		cmd := strings.ToLower(c.prompt(">> "))
		if cmd == "0" || cmd == "exit" {
			return
		}

		var err error
		if c.token == "" {
			switch cmd {
			case "1", "register":
				err = c.register()
			case "2", "login":
				err = c.login()
			default:
				fmt.Println("unknown command (register or login first)")
			}
		} else {
			switch cmd {
			case "1", "create":
				err = c.createPost()
			case "2", "delete":
				err = c.deletePost()
			case "3", "update":
				err = c.updatePost()
			case "4", "list":
				err = c.listPosts()
			case "5", "get":
				err = c.getPost()
			case "6", "logout":
				c.token = ""
				c.client.SetAuthToken("")
				fmt.Println("logged out")
			default:
				fmt.Println("unknown command")
			}
		}
		if err != nil {
			fmt.Println("error:", err)
		}
	}
}

func (c *cli) prompt(label string) string {
	fmt.Print(label)
	if !c.in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *cli) authenticate(path string) error {
	username := c.prompt("username: ")
	password := c.prompt("password: ")

	var reply tokenReply
	resp, err := c.client.R().
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&reply).
		SetError(&reply).
		Post(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%s: %s", resp.Status(), reply.Error)
	}

	c.token = reply.Token
	c.client.SetAuthToken(reply.Token)
	fmt.Println(reply.Message)
	return nil
}

func (c *cli) register() error {
	return c.authenticate("/register")
}

func (c *cli) login() error {
	return c.authenticate("/login")
}

func (c *cli) createPost() error {
	title := c.prompt("title: ")
	content := c.prompt("content: ")

	var reply messageReply
	resp, err := c.client.R().
		SetBody(map[string]string{"title": title, "content": content}).
		SetResult(&reply).
		SetError(&reply).
		Post("/posts")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%s: %s", resp.Status(), reply.Error)
	}
	fmt.Printf("%s (id=%d)\n", reply.Message, reply.PostID)
	return nil
}

func (c *cli) deletePost() error {
	id, err := c.promptID()
	if err != nil {
		return err
	}

	var reply messageReply
	resp, err := c.client.R().
		SetResult(&reply).
		SetError(&reply).
		Delete(fmt.Sprintf("/posts/%d", id))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%s: %s", resp.Status(), reply.Error)
	}
	fmt.Println(reply.Message)
	return nil
}

func (c *cli) updatePost() error {
	id, err := c.promptID()
	if err != nil {
		return err
	}
	title := c.prompt("new title (empty to keep): ")
	content := c.prompt("new content (empty to keep): ")

	var reply messageReply
	resp, err := c.client.R().
		SetBody(map[string]string{"title": title, "content": content}).
		SetResult(&reply).
		SetError(&reply).
		Patch(fmt.Sprintf("/posts/%d", id))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%s: %s", resp.Status(), reply.Error)
	}
	fmt.Println(reply.Message)
	return nil
}

func (c *cli) listPosts() error {
	var posts []post
	resp, err := c.client.R().
		SetResult(&posts).
		Get("/posts")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("list posts: %s", resp.Status())
	}
	if len(posts) == 0 {
		fmt.Println("no posts yet")
		return nil
	}
	for _, p := range posts {
		printPost(p)
	}
	return nil
}

func (c *cli) getPost() error {
	id, err := c.promptID()
	if err != nil {
		return err
	}

	var p post
	var errReply messageReply
	resp, err := c.client.R().
		SetResult(&p).
		SetError(&errReply).
		Get(fmt.Sprintf("/posts/%d", id))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%s: %s", resp.Status(), errReply.Error)
	}
	printPost(p)
	return nil
}

func (c *cli) promptID() (int, error) {
	raw := c.prompt("post id: ")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q", raw)
	}
	return id, nil
}

func printPost(p post) {
	fmt.Printf("[%d] %s (author %d, updated %s)\n    %s\n",
		p.ID, p.Title, p.UserID, p.UpdatedAt.Format(time.RFC3339), p.Content)
}
