package watch

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>buildgraph watch</title>
<style>
  body { margin: 0; font-family: ui-monospace, Menlo, monospace; }
  header { padding: 8px 12px; border-bottom: 1px solid #ddd; display: flex; gap: 16px; }
  #status.error { color: #b00020; }
  #graph { width: 100vw; height: calc(100vh - 40px); }
</style>
<script src="https://unpkg.com/d3@7/dist/d3.min.js"></script>
<script src="https://unpkg.com/@hpcc-js/wasm@2/dist/graphviz.umd.js"></script>
<script src="https://unpkg.com/d3-graphviz@5/build/d3-graphviz.min.js"></script>
</head>
<body>
<header><strong>buildgraph watch</strong><span id="view"></span><span id="status">connecting</span></header>
<div id="graph"></div>
<script>
  const graph = d3.select("#graph").graphviz().fit(true);
  const status = document.getElementById("status");
  const view = document.getElementById("view");
  const events = new EventSource("/events");

  events.addEventListener("graph", (e) => {
    const snapshot = JSON.parse(e.data);
    view.textContent = snapshot.view + " #" + snapshot.id;
    status.className = "";
    status.textContent = snapshot.tasks + " tasks, " + snapshot.cycles + " cycles";
    graph.renderDot(snapshot.dot);
  });
  events.addEventListener("error", (e) => {
    if (!e.data) { return; }
    status.className = "error";
    status.textContent = JSON.parse(e.data).message;
  });
</script>
</body>
</html>
`
