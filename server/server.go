package server

import (
	"bufio"
	"fmt"
	"net"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ConcordiaPaulaLagoTeaching/file-sharing-server-team-hs/filesystem"
)

// Server speaks the line protocol over TCP: one newline-terminated command
// per request, one line back. Each connection gets its own goroutine; the
// filesystem manager does its own locking.
type Server struct {
	FS *filesystem.Manager
}

func New(fs *filesystem.Manager) *Server {
	return &Server{FS: fs}
}

func (s *Server) ListenAndServe(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		log.Errorf("Could not listen on %s: %s", addr, err.Error())
		return err
	}
	log.Infof("Server started. Listening on %s", l.Addr().String())
	return s.Serve(l)
}

func (s *Server) Serve(l net.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			return err
		}
		log.Infof("New client connected: %s", conn.RemoteAddr().String())
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer func() {
		conn.Close()
		log.Infof("Client disconnected: %s", conn.RemoteAddr().String())
	}()

	scanner := bufio.NewScanner(conn)
	// WRITE payloads are one line; allow a full disk's worth plus slack.
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	writer := bufio.NewWriter(conn)

	for scanner.Scan() {
		line := scanner.Text()

		response, quit := s.process(line)
		if _, err := writer.WriteString(response + "\n"); err != nil {
			log.Errorf("Error writing to client %s: %s", conn.RemoteAddr().String(), err.Error())
			return
		}
		if err := writer.Flush(); err != nil {
			log.Errorf("Error writing to client %s: %s", conn.RemoteAddr().String(), err.Error())
			return
		}
		if quit {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Errorf("Error handling client %s: %s", conn.RemoteAddr().String(), err.Error())
	}
}

// process runs one command line and renders the reply. quit reports that
// the connection should close after the reply is sent.
func (s *Server) process(line string) (response string, quit bool) {
	if strings.TrimSpace(line) == "" {
		return "ERROR: Empty command.", false
	}

	// at most 3 fields: WRITE's content is the remainder of the line
	parts := strings.SplitN(line, " ", 3)
	command := strings.ToUpper(parts[0])

	switch command {
	case "CREATE":
		if len(parts) < 2 {
			return "ERROR: CREATE command requires a filename", false
		}
		name := parts[1]
		if len(name) > filesystem.NameBytes {
			return "ERROR: filename too large", false
		}
		if err := s.FS.Create(name); err != nil {
			return errorResponse(err), false
		}
		return fmt.Sprintf("SUCCESS: File '%s' created.", name), false

	case "WRITE":
		if len(parts) < 3 {
			return "ERROR: WRITE command requires filename and content", false
		}
		name := parts[1]
		if len(name) > filesystem.NameBytes {
			return "ERROR: filename too large", false
		}
		if err := s.FS.Write(name, []byte(parts[2])); err != nil {
			return errorResponse(err), false
		}
		return fmt.Sprintf("SUCCESS: File '%s' written.", name), false

	case "READ":
		if len(parts) < 2 {
			return "ERROR: READ command requires a filename", false
		}
		content, err := s.FS.Read(parts[1])
		if err != nil {
			return errorResponse(err), false
		}
		return "SUCCESS: " + string(content), false

	case "DELETE":
		if len(parts) < 2 {
			return "ERROR: DELETE command requires a filename", false
		}
		name := parts[1]
		if err := s.FS.Delete(name); err != nil {
			return errorResponse(err), false
		}
		return fmt.Sprintf("SUCCESS: File '%s' deleted.", name), false

	case "LIST":
		names := s.FS.List()
		if len(names) == 0 {
			return "SUCCESS: No files in the system.", false
		}
		return "SUCCESS: " + strings.Join(names, ", "), false

	case "QUIT":
		return "SUCCESS: Disconnecting.", true

	default:
		return "ERROR: Unknown command.", false
	}
}

func errorResponse(err error) string {
	return "ERROR: " + err.Error()
}
