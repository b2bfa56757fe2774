/*
Package config loads the settings a weblog runs with.

Settings come from three layers, each overriding the one before it:

  - the defaults in [Default]
  - an optional YAML settings file
  - environment variables

Here are the available environment variables and their settings file keys.
  - ENVIRONMENT (environment): the environment the weblog runs in; default: DEVELOPMENT; cf. [weblog.Environment]
  - DATABASE_URL (database): a postgres:// URL or the path to a SQLite file; default: weblog.db
  - DATABASE_MAX_IDLE_CXNS (database_max_idle_cxns): released connections kept open; default: 0
  - SECRET_KEY (secret_key): the key session cookies are signed with; default: development_key
  - ADMIN_USERNAME (username): the username that logs in; default: admin
  - ADMIN_PASSWORD (password): the password that logs in; default: default
  - BASE_URL (base_url): the URL the weblog is served over; default: http://localhost:3000
  - PORT (port): the port the web server listens on; default: :3000
  - STATIC_DIR (static_dir): the directory served under /static/; default: static
  - LOG_LEVEL (log_level): the level at which to begin logging; default: INFO
  - SESSION_ENCRYPTION_KEY (session_encryption_key): a hex-encoded key encrypting session cookies
  - SESSION_MAX_AGE (session_max_age): seconds a session lives; default: 0, as long as the browser session
  - SESSION_REDIS_ADDR (session_redis_addr): a Redis server sessions are stored in
  - SESSION_REDIS_PASSWORD (session_redis_password): the password for that Redis server
  - IDEMPOTENCY_REDIS_ADDR (idempotency_redis_addr): a Redis server caching idempotent responses
  - RATE_LIMIT (rate_limit): whether to rate limit clients by IP address; default: false
  - SERVER_IDLE_TIMEOUT (server_idle_timeout): cf. [time.ParseDuration]; default: 120s
  - SERVER_READ_TIMEOUT (server_read_timeout): cf. [time.ParseDuration]; default: 5s
  - SERVER_WRITE_TIMEOUT (server_write_timeout): cf. [time.ParseDuration]; default: 5s
  - SENTRY_DSN: where errors are reported to; environment only
*/
package config
