package rest

import "html/template"

type templates struct {
	page  *template.Template
	board *template.Template
}

func loadTemplates() *templates {
	board := template.Must(template.New("board").Parse(boardTemplate))
	page := template.Must(template.Must(board.Clone()).New("page").Parse(pageTemplate))

	return &templates{page: page, board: board}
}

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<style>
  body { font-family: sans-serif; display: flex; justify-content: center; }
  .board { display: grid; grid-template-columns: repeat(3, 80px); gap: 6px; margin: 16px 0; }
  .cell { width: 80px; height: 80px; font-size: 40px; }
  .status { font-size: 20px; min-height: 24px; }
  .controls button { margin-right: 8px; }
</style>
</head>
<body>
<main>
  <h1>Tic-Tac-Toe</h1>
  {{template "board" .}}
</main>
<script>
(function () {
  var ctx;
  var tones = {
    move: [[520, 0.08]],
    win: [[523, 0.12], [659, 0.12], [784, 0.24]],
    draw: [[392, 0.15], [330, 0.25]]
  };
  function play(name) {
    var notes = tones[name];
    if (!notes) { return; }
    try {
      ctx = ctx || new (window.AudioContext || window.webkitAudioContext)();
      var at = ctx.currentTime;
      notes.forEach(function (n) {
        var osc = ctx.createOscillator();
        var gain = ctx.createGain();
        osc.frequency.value = n[0];
        gain.gain.value = 0.1;
        osc.connect(gain);
        gain.connect(ctx.destination);
        osc.start(at);
        osc.stop(at + n[1]);
        at += n[1];
      });
    } catch (e) {}
  }
  document.body.addEventListener("htmx:afterSwap", function () {
    document.querySelectorAll("#game .cue").forEach(function (el) {
      play(el.dataset.cue);
      el.remove();
    });
  });
})();
</script>
</body>
</html>
`

const boardTemplate = `<div id="game"{{if .Polling}} hx-get="/game/board" hx-trigger="load delay:100ms" hx-swap="outerHTML"{{end}}>
  <p class="status">{{.Status}}</p>
  <div class="board">
    {{range .Cells}}
    <button class="cell" hx-post="/game/cells/{{.Index}}" hx-target="#game" hx-swap="outerHTML"{{if not .Enabled}} disabled{{end}}>{{.Mark}}</button>
    {{end}}
  </div>
  <div class="controls">
    <button hx-post="/game/reset" hx-target="#game" hx-swap="outerHTML">New game</button>
    <button hx-post="/game/mode" hx-target="#game" hx-swap="outerHTML">{{if .VsAI}}Play two players{{else}}Play vs computer{{end}}</button>
    <button hx-post="/game/mute" hx-target="#game" hx-swap="outerHTML">{{if .View.Muted}}Unmute{{else}}Mute{{end}}</button>
  </div>
  {{range .Cues}}<span class="cue" data-cue="{{.}}" hidden></span>{{end}}
</div>
`
