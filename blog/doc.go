/*
Package blog handles the requests a weblog serves:

	GET  /        lists entries, newest first
	POST /add     posts an entry; requires a logged in session
	GET  /login   shows the login form
	POST /login   checks credentials and logs the session in
	GET  /logout  logs the session out
	GET  /cats    shows two random cats

A session moves between anonymous and logged in only through /login and /logout.
*/
package blog
