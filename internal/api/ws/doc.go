// Package ws runs desktop sessions over WebSocket.
//
// Each connection owns one desktop.Desktop. The browser sends desktop.Event
// messages; every accepted event is answered with the re-rendered windows
// fragment:
//
//	-> {"type":"pointer_move","pointerId":1,"x":120,"y":80}
//	<- {"type":"render","html":"<div id=\"windows\">...","snapshot":{...}}
//
// Rejected events are answered with {"type":"error","message":...} and leave
// the desktop unchanged. {"type":"ping"} is answered with {"type":"pong"}.
// Events are rate limited per connection; releasing a drag is never limited
// so a captured pointer cannot get stuck.
package ws
